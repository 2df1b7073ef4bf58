package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/game"
)

// ClientConfig describes a player joining a remote host.
type ClientConfig struct {
	URL   string
	Name  string
	Token string // Table token, when the host requires one
	Agent game.Agent
	// OnWelcome and OnResult are optional.
	OnWelcome func(WelcomeData)
	OnResult  func(RoundResultData)
}

// Play connects to a host and answers its requests with the configured agent
// until the host ends the session, the connection fails or ctx is done. A
// normal closure by the host returns nil.
func Play(ctx context.Context, logger zerolog.Logger, cfg ClientConfig) error {
	u, err := wsURL(cfg.URL)
	if err != nil {
		return err
	}
	logger = logger.With().Str("component", "remote-client").Str("player", cfg.Name).Logger()
	logger.Info().Str("url", u).Msg("Connecting to host")

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	c := newConn(ws)
	defer func() { _ = ws.Close() }()

	stop := context.AfterFunc(ctx, func() {
		_ = c.close(websocket.CloseGoingAway, "client shutting down")
	})
	defer stop()

	if err := c.sendData(TypeHello, "", HelloData{Name: cfg.Name, Token: cfg.Token}); err != nil {
		return fmt.Errorf("send hello: %w", err)
	}

	for {
		m, err := c.receive()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				logger.Info().Msg("Host ended the session")
				return nil
			}
			return fmt.Errorf("%w: %v", ErrDisconnected, err)
		}
		if err := handle(ctx, c, cfg, m, logger); err != nil {
			return err
		}
	}
}

// handle answers one host message. Only a host error or a failed write ends
// the session.
func handle(ctx context.Context, c *conn, cfg ClientConfig, m *Message, logger zerolog.Logger) error {
	switch m.Type {
	case TypeWelcome:
		var w WelcomeData
		if err := m.Decode(&w); err != nil {
			return err
		}
		logger.Info().Int("seat", w.Seat).Int("seats", w.Seats).Msg("Seated")
		if cfg.OnWelcome != nil {
			cfg.OnWelcome(w)
		}
		return nil

	case TypeMoveRequest:
		var req game.MoveRequest
		if err := m.Decode(&req); err != nil {
			return reply(c, m.RequestID, TypeError, errorData(err))
		}
		move, err := think(ctx, req.ThinkTime, func(ctx context.Context) (game.Move, error) {
			return cfg.Agent.ChooseMove(ctx, req)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Agent move failed")
			return reply(c, m.RequestID, TypeError, errorData(fmt.Errorf("%w: %v", ErrAgentFailed, err)))
		}
		return reply(c, m.RequestID, TypeMove, move)

	case TypeFantasyRequest:
		var req game.FantasyRequest
		if err := m.Decode(&req); err != nil {
			return reply(c, m.RequestID, TypeError, errorData(err))
		}
		p, err := think(ctx, req.ThinkTime, func(ctx context.Context) (game.Placement, error) {
			return cfg.Agent.ChooseFantasy(ctx, req)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Agent fantasy placement failed")
			return reply(c, m.RequestID, TypeError, errorData(fmt.Errorf("%w: %v", ErrAgentFailed, err)))
		}
		return reply(c, m.RequestID, TypePlacement, p)

	case TypeRoundResult:
		var res RoundResultData
		if err := m.Decode(&res); err != nil {
			return err
		}
		logger.Info().Str("round", res.Round.ID).Stringer("status", res.Round.Status).Msg("Round closed")
		if cfg.OnResult != nil {
			cfg.OnResult(res)
		}
		return nil

	case TypeError:
		var e ErrorData
		if err := m.Decode(&e); err != nil {
			return err
		}
		switch e.Code {
		case "table_full":
			return fmt.Errorf("%w: %s", ErrTableFull, e.Message)
		case "unauthorized":
			return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
		}
		return e

	default:
		logger.Warn().Str("type", string(m.Type)).Msg("Ignoring unknown message")
		return nil
	}
}

func reply(c *conn, requestID string, t MessageType, data any) error {
	if err := c.sendData(t, requestID, data); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

// think bounds a local agent call by the host's think time, when it has one.
func think[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return fn(ctx)
}

// wsURL converts an http(s) address to the host's websocket endpoint.
func wsURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid host URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("invalid host URL %q: unsupported scheme", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}
