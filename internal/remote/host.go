package remote

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/openface/internal/game"
)

// Host seats remote players as they connect. Each websocket client sends a
// hello, is assigned the next free seat and becomes an Agent.
type Host struct {
	seats     int
	upgrader  websocket.Upgrader
	validator Validator
	logger    zerolog.Logger

	mu     sync.Mutex
	agents []*Agent
	joined chan *Agent
}

// HostOption configures a Host.
type HostOption func(*Host)

// WithValidator checks every hello before seating the player.
func WithValidator(v Validator) HostOption {
	return func(h *Host) { h.validator = v }
}

// NewHost creates a host for a table of seats players. Without a validator
// every player is admitted.
func NewHost(logger zerolog.Logger, seats int, opts ...HostOption) *Host {
	h := &Host{
		seats:     seats,
		validator: openValidator{},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger.With().Str("component", "host").Logger(),
		joined: make(chan *Agent, seats),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handler serves the websocket endpoint at /ws and a health check at /health.
func (h *Host) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/health", h.handleHealth)
	return mux
}

func (h *Host) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	c := newConn(ws)

	_ = ws.SetReadDeadline(time.Now().Add(helloWait))
	m, err := c.receive()
	if err != nil {
		h.logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("No hello from client")
		_ = ws.Close()
		return
	}
	var hello HelloData
	if m.Type != TypeHello {
		err = fmt.Errorf("%w: expected %s, got %s", ErrBadMessage, TypeHello, m.Type)
	} else if err = m.Decode(&hello); err == nil && hello.Name == "" {
		err = fmt.Errorf("%w: empty name", ErrBadMessage)
	}
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), helloWait)
		err = h.validator.Validate(ctx, hello.Name, hello.Token)
		cancel()
	}
	if err != nil {
		h.reject(c, err)
		return
	}

	h.mu.Lock()
	seat := len(h.agents)
	if seat >= h.seats {
		h.mu.Unlock()
		h.reject(c, ErrTableFull)
		return
	}
	a := newAgent(c, hello.Name, seat, h.logger)
	h.agents = append(h.agents, a)
	h.mu.Unlock()

	if err := c.sendData(TypeWelcome, m.RequestID, WelcomeData{Seat: seat, Name: hello.Name, Seats: h.seats}); err != nil {
		a.fail(fmt.Errorf("%w: %v", ErrDisconnected, err))
	}
	h.logger.Info().Str("player", hello.Name).Int("seat", seat).Msg("Player seated")
	h.joined <- a
}

func (h *Host) reject(c *conn, err error) {
	h.logger.Warn().Err(err).Msg("Rejecting client")
	_ = c.sendData(TypeError, "", errorData(err))
	_ = c.close(websocket.ClosePolicyViolation, err.Error())
}

func (h *Host) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	seated := len(h.agents)
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"ok","seated":%d,"seats":%d}`, seated, h.seats)
}

// Wait blocks until every seat is taken and returns the agents in seat order.
func (h *Host) Wait(ctx context.Context) ([]*Agent, error) {
	out := make([]*Agent, 0, h.seats)
	for len(out) < h.seats {
		select {
		case a := <-h.joined:
			out = append(out, a)
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for players (%d/%d seated): %w", len(out), h.seats, ctx.Err())
		}
	}
	slices.SortFunc(out, func(a, b *Agent) int { return a.seat - b.seat })
	return out, nil
}

// Announce sends a closed round to every seated player.
func (h *Host) Announce(snap game.RoundSnapshot) {
	h.mu.Lock()
	agents := slices.Clone(h.agents)
	h.mu.Unlock()
	for _, a := range agents {
		if err := a.Notify(snap); err != nil {
			h.logger.Warn().Err(err).Int("seat", a.seat).Msg("Failed to announce round result")
		}
	}
}

// Close ends every seated session.
func (h *Host) Close() {
	h.mu.Lock()
	agents := slices.Clone(h.agents)
	h.mu.Unlock()
	for _, a := range agents {
		_ = a.Close()
	}
}
