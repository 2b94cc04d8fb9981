package models

import "time"

// WeekStatus describes how far a week's results have progressed
type WeekStatus string

const (
	WeekUndecided WeekStatus = "undecided" // no winners declared
	WeekPartial   WeekStatus = "partial"   // some games decided
	WeekComplete  WeekStatus = "complete"  // every game decided
)

// Week holds one week's slate of games and whatever winners have been
// declared so far. Winners is keyed by game id; an absent key means the game
// is still undecided, never a loss.
type Week struct {
	Games      []Game         `json:"games"`
	Winners    map[int]string `json:"winners"`
	WinnersSet bool           `json:"winners_set"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewWeek creates an empty week
func NewWeek() *Week {
	return &Week{
		Winners:   make(map[int]string),
		CreatedAt: time.Now(),
	}
}

// Status returns the week's result lifecycle state
func (w *Week) Status() WeekStatus {
	switch {
	case len(w.Winners) == 0:
		return WeekUndecided
	case w.WinnersSet:
		return WeekComplete
	default:
		return WeekPartial
	}
}

// IsComplete reports whether every game in the week has a declared winner
func (w *Week) IsComplete() bool {
	return w.Status() == WeekComplete
}

// HasResults reports whether at least one game has been decided
func (w *Week) HasResults() bool {
	return len(w.Winners) > 0
}

// HasGames reports whether the slate has been entered
func (w *Week) HasGames() bool {
	return len(w.Games) > 0
}

// DecidedCount returns how many games have a declared winner
func (w *Week) DecidedCount() int {
	return len(w.Winners)
}

// WinnerFor returns the declared winner for a game, if that game has been
// decided. Partial weeks resolve game by game, never all or nothing.
func (w *Week) WinnerFor(gameID int) (string, bool) {
	winner, ok := w.Winners[gameID]
	return winner, ok
}

// GameByID returns the game with the given id within this week
func (w *Week) GameByID(gameID int) (*Game, bool) {
	for i := range w.Games {
		if w.Games[i].ID == gameID {
			return &w.Games[i], true
		}
	}
	return nil, false
}

// GameIDs returns the set of game ids on the slate
func (w *Week) GameIDs() map[int]bool {
	ids := make(map[int]bool, len(w.Games))
	for _, g := range w.Games {
		ids[g.ID] = true
	}
	return ids
}
