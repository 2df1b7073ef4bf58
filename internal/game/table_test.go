package game

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/openface/internal/gameid"
	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/rules"
)

func newTestTable(t *testing.T, names ...string) *Table {
	t.Helper()
	tbl, err := NewTable(zerolog.Nop(), rules.Default(), names, randutil.New(11))
	require.NoError(t, err)
	return tbl
}

// Seat 0 receives cards 0-4 and every other card from 10 on. Playing each
// card into the first legal row gives it QQ2 / KK543 / AAA87, which enters
// fantasy land without fouling.
const fantasyDeal = "Qs Qh 2c Ks Kh " +
	"2d 3c 4c 6d 7d " +
	"3d 8d 4d 9d 5c Td As Jd Ad 2h Ac 3h 7s 4h 8s"

func TestNewTableValidation(t *testing.T) {
	t.Parallel()

	_, err := NewTable(zerolog.Nop(), rules.Default(), []string{"solo"}, randutil.New(1))
	assert.Error(t, err)

	_, err = NewTable(zerolog.Nop(), rules.Default(), []string{"a", "b"}, nil)
	assert.Error(t, err)

	_, err = NewTable(zerolog.Nop(), rules.Default(), []string{"a", "b"}, randutil.New(1), WithFirstSeat(2))
	assert.Error(t, err)
}

func TestTableOneRoundAtATime(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, "alice", "bob")
	r, err := tbl.NewRound()
	require.NoError(t, err)
	require.NoError(t, gameid.Validate(r.ID()))
	assert.Equal(t, 1, r.Number())

	_, err = tbl.NewRound()
	assert.ErrorIs(t, err, ErrRoundInProgress)

	require.NoError(t, r.Cancel("test"))
	r2, err := tbl.NewRound()
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Number())
	assert.Equal(t, 2, tbl.Rounds())
}

func TestTableSettlesScores(t *testing.T) {
	t.Parallel()

	r := rules.Default()
	r.Fantasy.Mode = rules.FantasyOff
	tbl, err := NewTable(zerolog.Nop(), r, []string{"alice", "bob", "carol"}, randutil.New(5))
	require.NoError(t, err)
	for i := range 3 {
		r, err := tbl.NewRound()
		require.NoError(t, err)

		seat, ok := r.Current()
		require.True(t, ok)
		assert.Equal(t, i%3, seat, "the first seat rotates every round")

		before := tbl.Scores()
		playFirstLegal(t, r)
		require.Equal(t, StatusScored, r.Status())

		totals := r.Sheet().Totals()
		after := tbl.Scores()
		for s := range after {
			assert.Equal(t, before[s]+totals[s], after[s])
		}
	}

	sum := 0
	for _, p := range tbl.Players() {
		assert.Equal(t, 3, p.Rounds)
		sum += p.Score
	}
	assert.Zero(t, sum)
}

func TestTableFantasyCarriesOver(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, "alice", "bob")
	r, err := tbl.NewRoundWithDeck(stackedDeck(t, fantasyDeal))
	require.NoError(t, err)
	playFirstLegal(t, r)
	require.Equal(t, StatusScored, r.Status())
	require.False(t, r.Sheet().Seats[0].Fouled)

	alice := tbl.Players()[0]
	assert.Equal(t, FantasyState{Phase: FantasyPending, Cards: 14, Streak: 1}, alice.Fantasy)
	assert.Equal(t, 1, alice.FantasyEntries)

	// Next round alice is dealt her fantasy hand.
	r2, err := tbl.NewRound()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, r2.FantasySeats())
	assert.Equal(t, FantasyActive, tbl.Players()[0].Fantasy.Phase)

	// A cancelled round does not cost her the hand.
	require.NoError(t, r2.Cancel("disconnect"))
	assert.Equal(t, FantasyPending, tbl.Players()[0].Fantasy.Phase)

	r3, err := tbl.NewRound()
	require.NoError(t, err)
	hand, err := r3.Pending(0)
	require.NoError(t, err)
	assert.Len(t, hand, 14)
}

func TestTableRunnerIntegration(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, "alice", "bob")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for range 5 {
		r, err := tbl.NewRound()
		require.NoError(t, err)
		agents := []Agent{firstLegalAgent{}, bottomUpAgent{}}
		_, err = NewRunner(zerolog.Nop(), r, agents, tbl.Rules().Agent).Run(ctx)
		require.NoError(t, err)
	}
	players := tbl.Players()
	assert.Equal(t, 5, players[0].Rounds)
	assert.Equal(t, 0, players[0].Score+players[1].Score)
}
