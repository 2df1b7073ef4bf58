package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/openface/internal/randutil"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Three boards sharing no cards.
//
//	strong: QQ / nines full / quad aces, royalties 7+12+10.
//	modest: high card / pair of kings / eights full, royalties 0+0+6.
//	fouled: JJJ / six-high straight / flush, fouled under the strict ladder.
func scoringBoards(t *testing.T) (strong, modest, fouled *Board) {
	t.Helper()
	strong = mustBoard(t, "Qs Qh 4c", "9d 9c 9s 2h 2d", "As Ah Ad Ac Ks")
	modest = mustBoard(t, "2c 3c 5d", "Kd Kc 5h 6h 7h", "8c 8d 8h Tc Td")
	fouled = mustBoard(t, "Js Jh Jc", "2s 3h 4d 5c 6s", "Qd Jd 7d 6d 3d")
	return strong, modest, fouled
}

func TestBoardRoyalties(t *testing.T) {
	t.Parallel()

	strong, modest, fouled := scoringBoards(t)
	table := rules.DefaultRoyalties()

	roy, err := strong.Royalties(table)
	require.NoError(t, err)
	assert.Equal(t, RowRoyalties{7, 12, 10}, roy)
	assert.Equal(t, 29, roy.Total())

	roy, err = modest.Royalties(table)
	require.NoError(t, err)
	assert.Equal(t, RowRoyalties{0, 0, 6}, roy)

	roy, err = fouled.Royalties(table)
	require.NoError(t, err)
	assert.Equal(t, RowRoyalties{19, 4, 4}, roy, "royalties are priced before fouls are considered")

	_, err = NewBoard().Royalties(table)
	assert.ErrorIs(t, err, ErrBoardIncomplete)
}

func TestCompareBoards(t *testing.T) {
	t.Parallel()

	strong, modest, _ := scoringBoards(t)
	lines, err := CompareBoards(strong, modest)
	require.NoError(t, err)
	assert.Equal(t, LineResult{Win, Win, Win}, lines)
	assert.Equal(t, 1, lines.Scoop())
	assert.Equal(t, 3, lines.Points())

	back, err := CompareBoards(modest, strong)
	require.NoError(t, err)
	assert.Equal(t, lines.Invert(), back)
}

func TestCompareBoardsPush(t *testing.T) {
	t.Parallel()

	a := mustBoard(t, "2s 3d 5h", "6s 6d 8h 9c Jd", "Ts Th Tc 4s 7d")
	b := mustBoard(t, "2h 3c 5c", "6h 6c 8d 9s Jc", "Js Jh 4h 4d 7c")

	lines, err := CompareBoards(a, b)
	require.NoError(t, err)
	assert.Equal(t, LineResult{Push, Push, Win}, lines)
	assert.Equal(t, 0, lines.Scoop())

	sheet, err := ScoreRound([]*Board{a, b}, rules.Default())
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1}, sheet.Totals())
}

func TestScoreRoundHeadsUp(t *testing.T) {
	t.Parallel()

	strong, modest, _ := scoringBoards(t)
	sheet, err := ScoreRound([]*Board{strong, modest}, rules.Default())
	require.NoError(t, err)

	// 3 lines, 3 for the scoop, 29-6 royalties.
	assert.Equal(t, []int{29, -29}, sheet.Totals())
	require.Len(t, sheet.Pairs, 1)
	p := sheet.Pairs[0]
	assert.Equal(t, 3, p.Line)
	assert.Equal(t, 3, p.Bonus)
	assert.Equal(t, 23, p.Royalty)
}

func TestScoreRoundFouledLosesEverything(t *testing.T) {
	t.Parallel()

	strong, _, fouled := scoringBoards(t)
	sheet, err := ScoreRound([]*Board{strong, fouled}, rules.Default())
	require.NoError(t, err)

	assert.True(t, sheet.Seats[1].Fouled)
	assert.Equal(t, RowRoyalties{}, sheet.Seats[1].Royalties)
	assert.Equal(t, []int{35, -35}, sheet.Totals())
}

func TestScoreRoundFouledRoyaltiesOption(t *testing.T) {
	t.Parallel()

	strong, modest, fouled := scoringBoards(t)
	r := rules.Default()
	r.FouledRoyalties = true

	sheet, err := ScoreRound([]*Board{strong, modest, fouled}, r)
	require.NoError(t, err)
	assert.Equal(t, 27, sheet.Seats[2].Royalties.Total())
	// strong: 29 from modest, 6+(29-27) from fouled.
	// modest: -29, then 6+(6-27) from fouled.
	assert.Equal(t, []int{37, -44, 7}, sheet.Totals())
}

func TestScoreRoundBothFouled(t *testing.T) {
	t.Parallel()

	_, _, fouled := scoringBoards(t)
	other := mustBoard(t, "As Ah Ac", "2c 3s 4h 5h 6h", "Kc Qc 9c 8c 7c")
	sheet, err := ScoreRound([]*Board{fouled, other}, rules.Default())
	require.NoError(t, err)

	p, ok := sheet.Pair(0, 1)
	require.True(t, ok)
	assert.Equal(t, PairResult{A: 0, B: 1}, p)
	assert.Equal(t, []int{0, 0}, sheet.Totals())
}

func TestScoreRoundThreePlayers(t *testing.T) {
	t.Parallel()

	strong, modest, fouled := scoringBoards(t)
	sheet, err := ScoreRound([]*Board{strong, modest, fouled}, rules.Default())
	require.NoError(t, err)

	assert.Equal(t, []int{64, -17, -47}, sheet.Totals())
	assert.Len(t, sheet.Pairs, 3)

	p, ok := sheet.Pair(2, 1)
	require.True(t, ok)
	assert.Equal(t, LineResult{Loss, Loss, Loss}, p.Lines)
	assert.Equal(t, -12, p.Points)

	_, ok = sheet.Pair(0, 5)
	assert.False(t, ok)
}

func TestScoreRoundZeroSum(t *testing.T) {
	t.Parallel()

	rng := randutil.New(7)
	for range 200 {
		deck := poker.NewDeck(rng)
		boards := make([]*Board, 3)
		for i := range boards {
			cards, err := deck.DrawN(13)
			require.NoError(t, err)
			boards[i], err = NewBoardFrom(cards[:3], cards[3:8], cards[8:])
			require.NoError(t, err)
		}
		sheet, err := ScoreRound(boards, rules.Default())
		require.NoError(t, err)

		sum := 0
		for _, v := range sheet.Totals() {
			sum += v
		}
		require.Zero(t, sum)
		for _, pr := range sheet.Pairs {
			back, ok := sheet.Pair(pr.B, pr.A)
			require.True(t, ok)
			require.Equal(t, -pr.Points, back.Points)
		}
	}
}

func TestScoreRoundIncompleteBoard(t *testing.T) {
	t.Parallel()

	strong, _, _ := scoringBoards(t)
	_, err := ScoreRound([]*Board{strong, NewBoard()}, rules.Default())
	assert.ErrorIs(t, err, ErrBoardIncomplete)
}
