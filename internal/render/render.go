// Package render draws boards, score sheets and rules for the terminal.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/openface/internal/game"
	"github.com/lox/openface/internal/rules"
	"github.com/lox/openface/poker"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	BoardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#626262")).
			Padding(0, 1)

	RowLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Width(7)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	EmptySlotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Card renders one card with its suit symbol, red or black.
func Card(c poker.Card) string {
	if c.Suit.IsRed() {
		return RedCardStyle.Render(c.Pretty())
	}
	return BlackCardStyle.Render(c.Pretty())
}

// Row renders a row's cards followed by a placeholder for each open slot.
func Row(cards []poker.Card, size int) string {
	parts := make([]string, 0, size)
	for _, c := range cards {
		parts = append(parts, Card(c))
	}
	for len(parts) < size {
		parts = append(parts, EmptySlotStyle.Render("··"))
	}
	return strings.Join(parts, " ")
}

// Board renders a seat's board in a bordered box. Complete rows are described.
func Board(title string, v game.BoardView) string {
	lines := []string{HeaderStyle.Render(title)}
	for _, r := range poker.Rows {
		cards := v.Row(r)
		line := RowLabelStyle.Render(r.String()) + Row(cards, r.Size())
		if len(cards) == r.Size() {
			if desc, err := poker.Describe(cards); err == nil {
				line += "  " + InfoStyle.Render(desc)
			}
		}
		lines = append(lines, line)
	}
	if v.Forfeit {
		lines = append(lines, ErrorStyle.Render("forfeited"))
	}
	return BoardStyle.Render(strings.Join(lines, "\n"))
}

// Snapshot renders every seat of a round side by side.
func Snapshot(snap game.RoundSnapshot) string {
	boards := make([]string, len(snap.Seats))
	for i, s := range snap.Seats {
		title := fmt.Sprintf("%d %s", s.Seat, s.Name)
		if s.Fantasy {
			title += " ★"
		}
		boards[i] = Board(title, s.Board)
	}
	header := HeaderStyle.Render(fmt.Sprintf("Round %d %s", snap.Number, snap.Status))
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, boards...))
}

// Sheet renders a score sheet as a table with one line per seat.
func Sheet(names []string, sheet *game.ScoreSheet) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(InfoStyle).
		Headers("Seat", "Player", "Top", "Middle", "Bottom", "Royalties", "Points")
	for _, s := range sheet.Seats {
		name := ""
		if s.Seat < len(names) {
			name = names[s.Seat]
		}
		points := strconv.Itoa(s.Total)
		switch {
		case s.Total > 0:
			points = SuccessStyle.Render("+" + points)
		case s.Total < 0:
			points = ErrorStyle.Render(points)
		}
		roy := s.Royalties
		royalties := strconv.Itoa(roy.Total())
		if s.Fouled {
			royalties = ErrorStyle.Render("foul")
		}
		t.Row(strconv.Itoa(s.Seat), name,
			strconv.Itoa(roy[poker.Top]), strconv.Itoa(roy[poker.Middle]), strconv.Itoa(roy[poker.Bottom]),
			royalties, points)
	}
	lines := []string{t.Render()}
	for _, p := range sheet.Pairs {
		line := fmt.Sprintf("%d v %d: lines %s, scoop %+d, royalties %+d = %+d",
			p.A, p.B, lineOutcomes(p.Lines), p.Bonus, p.Royalty, p.Points)
		lines = append(lines, InfoStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func lineOutcomes(l game.LineResult) string {
	parts := make([]string, len(l))
	for i, o := range l {
		parts[i] = o.String()
	}
	return strings.Join(parts, "/")
}

// Rules renders the royalty schedule and fantasy settings.
func Rules(r *rules.Rules) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", HeaderStyle.Render("Rules"))
	fmt.Fprintf(&b, "Scoop bonus %d, initial deal %d, street deal %d, ladder %s, fouled royalties %t\n",
		r.ScoopBonus, r.InitialDeal, r.StreetDeal, r.CrossStreet, r.FouledRoyalties)
	fmt.Fprintf(&b, "Think time %s, fallback %s\n\n", r.Agent.ThinkTime, r.Agent.Fallback)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(InfoStyle).
		Headers("Row", "Hand", "Royalty")
	for _, rank := range sortedRanks(r.Royalties.TopPair) {
		t.Row("top", "pair of "+rank.String()+"s", strconv.Itoa(r.Royalties.TopPair[rank]))
	}
	for _, rank := range sortedRanks(r.Royalties.TopTrips) {
		t.Row("top", "trip "+rank.String()+"s", strconv.Itoa(r.Royalties.TopTrips[rank]))
	}
	for _, row := range []struct {
		name  string
		hands map[poker.Category]int
		royal int
	}{
		{"middle", r.Royalties.MiddleHands, r.Royalties.MiddleRoyal},
		{"bottom", r.Royalties.BottomHands, r.Royalties.BottomRoyal},
	} {
		for _, c := range sortedCategories(row.hands) {
			t.Row(row.name, c.String(), strconv.Itoa(row.hands[c]))
		}
		if row.royal > 0 {
			t.Row(row.name, "royal flush", strconv.Itoa(row.royal))
		}
	}
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	f := r.Fantasy
	fmt.Fprintf(&b, "Fantasy %s: entry %s with %d cards, repeat with %d cards\n", f.Mode, f.Entry, f.NormalCards, f.RepeatCards)
	if f.Mode == rules.FantasyProgressive {
		for _, s := range f.Progressive {
			fmt.Fprintf(&b, "  %s → %d cards\n", s.Threshold, s.Cards)
		}
	}
	fmt.Fprintf(&b, "Stay with top %s, middle %s or bottom %s\n", f.StayTop, f.StayMiddle, f.StayBottom)
	return b.String()
}

func sortedRanks(m map[poker.Rank]int) []poker.Rank {
	out := make([]poker.Rank, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedCategories(m map[poker.Category]int) []poker.Category {
	out := make([]poker.Category, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
