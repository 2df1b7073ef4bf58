package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// firstLegal plays the first pending card into the first legal row.
type firstLegal struct{}

func (firstLegal) ChooseMove(_ context.Context, req game.MoveRequest) (game.Move, error) {
	return game.Move{Card: req.Pending[0], Row: req.Legal[0]}, nil
}

func (firstLegal) ChooseFantasy(_ context.Context, req game.FantasyRequest) (game.Placement, error) {
	return game.SimplePlacement(req.Cards), nil
}

func startHost(t *testing.T, seats int) (*Host, *httptest.Server) {
	t.Helper()
	h := NewHost(zerolog.Nop(), seats)
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func hello(t *testing.T, ws *websocket.Conn, name string) WelcomeData {
	t.Helper()
	m, err := NewMessage(TypeHello, "", HelloData{Name: name})
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(m))
	var reply Message
	require.NoError(t, ws.ReadJSON(&reply))
	require.Equal(t, TypeWelcome, reply.Type)
	var w WelcomeData
	require.NoError(t, reply.Decode(&w))
	return w
}

func TestWSURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
		wantErr  bool
	}{
		{in: "http://localhost:8080", want: "ws://localhost:8080/ws"},
		{in: "https://ofc.example.com/", want: "wss://ofc.example.com/ws"},
		{in: "ws://localhost:8080/table", want: "ws://localhost:8080/table"},
		{in: "ftp://localhost", wantErr: true},
	}
	for _, tt := range tests {
		got, err := wsURL(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestMessageDecodeRejectsGarbage(t *testing.T) {
	t.Parallel()

	m := &Message{Type: TypeMove, Data: []byte(`{"card":"Zz","row":"top"}`)}
	var mv game.Move
	assert.ErrorIs(t, m.Decode(&mv), ErrBadMessage)

	m = &Message{Type: TypeMove, Data: []byte(`{"card":"As","row":"bottom"}`)}
	require.NoError(t, m.Decode(&mv))
	assert.Equal(t, poker.Bottom, mv.Row)
	assert.Equal(t, "As", mv.Card.String())
}

func TestHostSeatsPlayersInOrder(t *testing.T) {
	t.Parallel()

	h, srv := startHost(t, 2)
	assert.Equal(t, 0, hello(t, dial(t, srv), "alice").Seat)
	assert.Equal(t, 1, hello(t, dial(t, srv), "bob").Seat)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "alice", agents[0].Name())
	assert.Equal(t, "bob", agents[1].Name())

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHostRejectsWhenFull(t *testing.T) {
	t.Parallel()

	_, srv := startHost(t, 1)
	hello(t, dial(t, srv), "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := Play(ctx, zerolog.Nop(), ClientConfig{URL: srv.URL, Name: "bob", Agent: firstLegal{}})
	assert.ErrorIs(t, err, ErrTableFull)
}

func TestHostRejectsMissingHello(t *testing.T) {
	t.Parallel()

	_, srv := startHost(t, 1)
	ws := dial(t, srv)
	m, err := NewMessage(TypeMove, "", game.Move{Card: poker.MustParseCards("As")[0], Row: poker.Top})
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(m))

	var reply Message
	require.NoError(t, ws.ReadJSON(&reply))
	assert.Equal(t, TypeError, reply.Type)
	var e ErrorData
	require.NoError(t, reply.Decode(&e))
	assert.Equal(t, "invalid_message", e.Code)
	assert.Contains(t, e.Message, "expected hello")

	_, _, err = ws.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func TestAgentRoundTrip(t *testing.T) {
	t.Parallel()

	h, srv := startHost(t, 1)
	ws := dial(t, srv)
	hello(t, ws, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)

	// The client answers the request with a move of its own choosing.
	go func() {
		var req Message
		if err := ws.ReadJSON(&req); err != nil {
			return
		}
		reply, _ := NewMessage(TypeMove, req.RequestID, game.Move{Card: poker.MustParseCards("Kd")[0], Row: poker.Middle})
		_ = ws.WriteJSON(reply)
	}()

	m, err := agents[0].ChooseMove(ctx, game.MoveRequest{
		Pending: poker.MustParseCards("Kd"),
		Legal:   []poker.Row{poker.Top, poker.Middle, poker.Bottom},
	})
	require.NoError(t, err)
	assert.Equal(t, poker.Middle, m.Row)
}

func TestAgentReportsClientError(t *testing.T) {
	t.Parallel()

	h, srv := startHost(t, 1)
	ws := dial(t, srv)
	hello(t, ws, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)

	go func() {
		var req Message
		if err := ws.ReadJSON(&req); err != nil {
			return
		}
		reply, _ := NewMessage(TypeError, req.RequestID, ErrorData{Code: "agent_failed", Message: "solver crashed"})
		_ = ws.WriteJSON(reply)
	}()

	_, err = agents[0].ChooseFantasy(ctx, game.FantasyRequest{})
	assert.ErrorIs(t, err, ErrAgentFailed)
	assert.ErrorContains(t, err, "solver crashed")
}

func TestAgentDisconnect(t *testing.T) {
	t.Parallel()

	h, srv := startHost(t, 1)
	ws := dial(t, srv)
	hello(t, ws, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)

	require.NoError(t, ws.Close())
	select {
	case <-agents[0].Done():
	case <-ctx.Done():
		t.Fatal("agent did not notice the disconnect")
	}
	assert.ErrorIs(t, agents[0].Err(), ErrDisconnected)

	_, err = agents[0].ChooseMove(ctx, game.MoveRequest{})
	assert.ErrorIs(t, err, ErrDisconnected)
}

func TestAgentHonoursContext(t *testing.T) {
	t.Parallel()

	h, srv := startHost(t, 1)
	ws := dial(t, srv)
	hello(t, ws, "alice")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)

	// The client reads the request and never answers.
	go func() {
		var req Message
		_ = ws.ReadJSON(&req)
	}()

	callCtx, callCancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer callCancel()
	_, err = agents[0].ChooseMove(callCtx, game.MoveRequest{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoError(t, agents[0].Err())
}

func TestRemoteRoundPlaysToCompletion(t *testing.T) {
	t.Parallel()

	const seats = 2
	h, srv := startHost(t, seats)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []RoundResultData
		errs    = make([]error, seats)
	)
	for i, name := range []string{"alice", "bob"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = Play(ctx, zerolog.Nop(), ClientConfig{
				URL:   srv.URL,
				Name:  name,
				Agent: firstLegal{},
				OnResult: func(res RoundResultData) {
					mu.Lock()
					defer mu.Unlock()
					results = append(results, res)
				},
			})
		}()
	}

	agents, err := h.Wait(ctx)
	require.NoError(t, err)

	names := make([]string, seats)
	players := make([]game.Agent, seats)
	for i, a := range agents {
		names[i] = a.Name()
		players[i] = a
	}
	r := rules.Default()
	round, err := game.NewRound(zerolog.Nop(), game.RoundConfig{
		ID:      "remote-round",
		Number:  1,
		Rules:   r,
		Deck:    poker.NewDeck(randutil.New(11)),
		Names:   names,
		Fantasy: []game.FantasyState{{Phase: game.FantasyActive, Cards: 14}, {}},
	})
	require.NoError(t, err)

	sheet, err := game.NewRunner(zerolog.Nop(), round, players, r.Agent).Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, sheet)
	assert.Equal(t, 0, sheet.Totals()[0]+sheet.Totals()[1])

	h.Announce(round.Snapshot())
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) == seats
	}, 5*time.Second, 10*time.Millisecond)

	h.Close()
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
	for _, res := range results {
		assert.Equal(t, game.StatusScored, res.Round.Status)
		assert.Equal(t, "remote-round", res.Round.ID)
		assert.Len(t, res.Round.Seats[res.Seat].Board.Bottom, 5)
	}
}

func TestTokenValidator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	v := NewTokenValidator("s3cret")
	assert.NoError(t, v.Validate(ctx, "alice", "s3cret"))
	assert.ErrorIs(t, v.Validate(ctx, "alice", "guess"), ErrUnauthorized)
	assert.ErrorIs(t, v.Validate(ctx, "alice", ""), ErrUnauthorized)
	assert.ErrorIs(t, NewTokenValidator("").Validate(ctx, "alice", ""), ErrUnauthorized)
}

func TestHostRequiresToken(t *testing.T) {
	t.Parallel()

	h := NewHost(zerolog.Nop(), 1, WithValidator(NewTokenValidator("s3cret")))
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		h.Close()
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := Play(ctx, zerolog.Nop(), ClientConfig{URL: srv.URL, Name: "mallory", Token: "guess", Agent: firstLegal{}})
	assert.ErrorIs(t, err, ErrUnauthorized)

	go func() {
		_ = Play(ctx, zerolog.Nop(), ClientConfig{URL: srv.URL, Name: "alice", Token: "s3cret", Agent: firstLegal{}})
	}()
	agents, err := h.Wait(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	assert.Equal(t, "alice", agents[0].Name())
}
