package models

import "fmt"

// Game represents one matchup on a week's slate. Team names are stored as
// entered by the admin; all comparisons go through CanonicalTeamName.
type Game struct {
	ID          int    `json:"id"`
	Away        string `json:"away"`
	Home        string `json:"home"`
	Date        string `json:"date"` // "2006-01-02" or empty when not yet scheduled
	NeutralSite bool   `json:"neutral_site"`
}

// HasTeam reports whether the given raw team name refers to either side of
// this game.
func (g *Game) HasTeam(team string) bool {
	return SameTeam(team, g.Away) || SameTeam(team, g.Home)
}

// Matchup returns a display string for the game
func (g *Game) Matchup() string {
	if g.NeutralSite {
		return fmt.Sprintf("%s vs %s", g.Away, g.Home)
	}
	return fmt.Sprintf("%s @ %s", g.Away, g.Home)
}
