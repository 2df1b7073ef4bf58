package remote

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/game"
)

// Agent is the host side of a remote seat. It implements game.Agent by
// sending each request to the client and waiting for the matching reply.
// Replies that arrive after their request has been abandoned are dropped.
type Agent struct {
	name   string
	seat   int
	conn   *conn
	logger zerolog.Logger

	mu      sync.Mutex
	pending map[string]chan *Message

	done      chan struct{}
	err       error
	closeOnce sync.Once
}

var _ game.Agent = (*Agent)(nil)

func newAgent(c *conn, name string, seat int, logger zerolog.Logger) *Agent {
	a := &Agent{
		name:    name,
		seat:    seat,
		conn:    c,
		logger:  logger.With().Str("component", "remote-agent").Str("player", name).Int("seat", seat).Logger(),
		pending: make(map[string]chan *Message),
		done:    make(chan struct{}),
	}
	go a.readPump()
	go a.pingPump()
	return a
}

// Name is the name the client introduced itself with.
func (a *Agent) Name() string { return a.name }

// Seat is the seat assigned to the client.
func (a *Agent) Seat() int { return a.seat }

// Done is closed once the connection is gone.
func (a *Agent) Done() <-chan struct{} { return a.done }

// Err returns why the connection closed, or nil while it is open.
func (a *Agent) Err() error {
	select {
	case <-a.done:
		return a.err
	default:
		return nil
	}
}

// ChooseMove implements game.Agent.
func (a *Agent) ChooseMove(ctx context.Context, req game.MoveRequest) (game.Move, error) {
	var m game.Move
	err := a.call(ctx, TypeMoveRequest, req, TypeMove, &m)
	return m, err
}

// ChooseFantasy implements game.Agent.
func (a *Agent) ChooseFantasy(ctx context.Context, req game.FantasyRequest) (game.Placement, error) {
	var p game.Placement
	err := a.call(ctx, TypeFantasyRequest, req, TypePlacement, &p)
	return p, err
}

// Notify sends the closed round to the client. It does not wait for a reply.
func (a *Agent) Notify(snap game.RoundSnapshot) error {
	if err := a.conn.sendData(TypeRoundResult, "", RoundResultData{Seat: a.seat, Round: snap}); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	return nil
}

// Close ends the session with a normal closure.
func (a *Agent) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.err = ErrDisconnected
		close(a.done)
		err = a.conn.close(websocket.CloseNormalClosure, "session over")
	})
	return err
}

func (a *Agent) call(ctx context.Context, t MessageType, data any, reply MessageType, out any) error {
	id := uuid.NewString()
	ch := make(chan *Message, 1)
	a.mu.Lock()
	a.pending[id] = ch
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		delete(a.pending, id)
		a.mu.Unlock()
	}()

	select {
	case <-a.done:
		return a.err
	default:
	}
	if err := a.conn.sendData(t, id, data); err != nil {
		return fmt.Errorf("%w: %v", ErrDisconnected, err)
	}
	a.logger.Debug().Str("type", string(t)).Str("request", id).Msg("Sent request")

	select {
	case m := <-ch:
		switch m.Type {
		case reply:
			return m.Decode(out)
		case TypeError:
			var e ErrorData
			if err := m.Decode(&e); err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrAgentFailed, e.Message)
		default:
			return fmt.Errorf("%w: got %s in reply to %s", ErrBadMessage, m.Type, t)
		}
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// readPump routes replies to waiting calls until the connection fails.
func (a *Agent) readPump() {
	ws := a.conn.ws
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		m, err := a.conn.receive()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				a.logger.Warn().Err(err).Msg("Connection lost")
			}
			a.fail(fmt.Errorf("%w: %v", ErrDisconnected, err))
			return
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))

		a.mu.Lock()
		ch, ok := a.pending[m.RequestID]
		delete(a.pending, m.RequestID)
		a.mu.Unlock()
		if !ok {
			a.logger.Warn().Str("type", string(m.Type)).Str("request", m.RequestID).Msg("Dropping unsolicited message")
			continue
		}
		ch <- m
	}
}

func (a *Agent) pingPump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := a.conn.ping(); err != nil {
				a.fail(fmt.Errorf("%w: %v", ErrDisconnected, err))
				return
			}
		case <-a.done:
			return
		}
	}
}

func (a *Agent) fail(err error) {
	a.closeOnce.Do(func() {
		a.err = err
		close(a.done)
		_ = a.conn.ws.Close()
	})
}
