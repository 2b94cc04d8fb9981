package models

// Season is a closed container of weeks. At most one season is active at a
// time; a locked season is read-only for admins and participants alike.
//
// DocVersion is an optimistic concurrency stamp: every write to the season
// document increments it, and a writer holding a stale version is rejected
// instead of silently overwriting another admin's edit.
type Season struct {
	Name       string        `json:"name"`
	Active     bool          `json:"active"`
	Locked     bool          `json:"locked"`
	DocVersion int64         `json:"doc_version"`
	Weeks      map[int]*Week `json:"weeks"`
}

// NewSeason creates an empty, inactive season
func NewSeason(name string) *Season {
	return &Season{
		Name:  name,
		Weeks: make(map[int]*Week),
	}
}

// Week returns the week with the given number, if it has been created
func (s *Season) Week(num int) (*Week, bool) {
	w, ok := s.Weeks[num]
	return w, ok
}

// EnsureWeek returns the week with the given number, creating it empty if the
// admin has not targeted it yet.
func (s *Season) EnsureWeek(num int) *Week {
	if s.Weeks == nil {
		s.Weeks = make(map[int]*Week)
	}
	if w, ok := s.Weeks[num]; ok {
		return w
	}
	w := NewWeek()
	s.Weeks[num] = w
	return w
}

// CompletedWeeks returns how many weeks have every winner declared
func (s *Season) CompletedWeeks() int {
	count := 0
	for _, w := range s.Weeks {
		if w.IsComplete() {
			count++
		}
	}
	return count
}
