package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/openface/internal/bot"
	"github.com/lox/openface/internal/rules"
)

func testConfig(rounds, workers int, bots ...string) Config {
	return Config{
		Rounds:  rounds,
		Bots:    bots,
		Rules:   rules.Default(),
		Seed:    12345,
		Workers: workers,
		Timeout: 10 * time.Second,
		Logger:  zerolog.Nop(),
	}
}

func TestNewValidates(t *testing.T) {
	t.Parallel()

	_, err := New(testConfig(4, 1, bot.Greedy))
	assert.ErrorContains(t, err, "players must be between")

	_, err = New(testConfig(4, 1, bot.Greedy, "fold"))
	assert.ErrorContains(t, err, "unknown bot")

	_, err = New(testConfig(0, 1, bot.Greedy, bot.Random))
	assert.ErrorContains(t, err, "rounds must be positive")

	s, err := New(testConfig(3, 8, bot.Greedy, bot.Random))
	require.NoError(t, err)
	assert.Equal(t, 3, s.config.Workers)
	assert.NotNil(t, s.config.BotLogger)
}

func TestRunAggregatesSeats(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(7, 3, bot.Greedy, bot.Random, bot.Greedy))
	require.NoError(t, err)
	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, report.Rounds)
	assert.Equal(t, 7, report.Scored+report.Failed)
	assert.Equal(t, 3, report.Workers)
	require.Len(t, report.Seats, 3)

	sum := 0
	for i, seat := range report.Seats {
		assert.Equal(t, i, seat.Seat)
		assert.Equal(t, report.Scored, seat.Stats.Rounds)
		assert.LessOrEqual(t, seat.CI95[0], seat.Mean)
		assert.GreaterOrEqual(t, seat.CI95[1], seat.Mean)
		sum += seat.Score
	}
	assert.Zero(t, sum)
	assert.Equal(t, bot.Random, report.Seats[1].Bot)
}

func TestRunIsReproducible(t *testing.T) {
	t.Parallel()

	run := func() []int {
		s, err := New(testConfig(4, 2, bot.Greedy, bot.Random))
		require.NoError(t, err)
		report, err := s.Run(context.Background())
		require.NoError(t, err)
		out := make([]int, len(report.Seats))
		for i, seat := range report.Seats {
			out[i] = seat.Score
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := New(testConfig(5, 1, bot.Greedy, bot.Greedy))
	require.NoError(t, err)
	_, err = s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportOutput(t *testing.T) {
	t.Parallel()

	s, err := New(testConfig(2, 1, bot.Greedy, bot.Random))
	require.NoError(t, err)
	report, err := s.Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, report.Seed, decoded.Seed)
	require.Len(t, decoded.Seats, 2)
	assert.Equal(t, report.Seats[0].Score, decoded.Seats[0].Score)

	var buf bytes.Buffer
	report.Summary(&buf)
	assert.Contains(t, buf.String(), "greedy vs random")
	assert.Contains(t, buf.String(), "Seat 1 (random)")
}
