package game

// Player is a seat's state carried between rounds.
type Player struct {
	Seat    int          `json:"seat"`
	Name    string       `json:"name"`
	Score   int          `json:"score"`
	Fantasy FantasyState `json:"fantasy"`

	Rounds          int `json:"rounds"`
	Fouls           int `json:"fouls"`
	Scoops          int `json:"scoops"`
	FantasyEntries  int `json:"fantasy_entries"`
	FantasyRepeats  int `json:"fantasy_repeats"`
	FantasyExits    int `json:"fantasy_exits"`
	LongestFantasy  int `json:"longest_fantasy"`
	RoyaltiesEarned int `json:"royalties_earned"`
}

// record folds one scored round into the player's running totals.
func (p *Player) record(res SeatResult, scoops int, before, after FantasyState) {
	p.Rounds++
	p.Score += res.Total
	p.Scoops += scoops
	p.RoyaltiesEarned += res.Royalties.Total()
	if res.Fouled {
		p.Fouls++
	}
	switch {
	case before.Phase == FantasyNormal && after.Phase == FantasyPending:
		p.FantasyEntries++
	case before.Phase == FantasyActive && after.Phase == FantasyPending:
		p.FantasyRepeats++
	case before.Phase == FantasyActive && after.Phase == FantasyNormal:
		p.FantasyExits++
	}
	p.LongestFantasy = max(p.LongestFantasy, after.Streak)
	p.Fantasy = after
}
