package models

import "time"

// ConfidencePick assigns one of the scarce confidence weights to a game
type ConfidencePick struct {
	GameID int `json:"game_id"`
	Weight int `json:"weight"`
}

// PickSubmission is one user's picks for one week. Picks maps game id to the
// chosen team name; Confidence carries exactly three weighted picks once the
// submission has passed validation. CorrectPicks and ConfidencePoints are
// cached resolver output, rewritten whenever winners are saved for the week.
type PickSubmission struct {
	Picks            map[int]string   `json:"picks"`
	Confidence       []ConfidencePick `json:"confidence"`
	Submitted        *time.Time       `json:"submitted,omitempty"`
	CorrectPicks     int              `json:"correct_picks"`
	ConfidencePoints int              `json:"confidence_points"`
}

// IsSubmitted reports whether the submission has been finalized. A submitted
// pick set is immutable except by administrative override.
func (p *PickSubmission) IsSubmitted() bool {
	return p.Submitted != nil
}

// HasPicks reports whether the submission contains at least one pick. The
// all-picks-submitted reveal gate counts only non-empty submissions.
func (p *PickSubmission) HasPicks() bool {
	return len(p.Picks) > 0
}

// ConfidenceFor returns the weight assigned to a game, if any
func (p *PickSubmission) ConfidenceFor(gameID int) (int, bool) {
	for _, c := range p.Confidence {
		if c.GameID == gameID {
			return c.Weight, true
		}
	}
	return 0, false
}

// MarkSubmitted stamps the submission with the given time
func (p *PickSubmission) MarkSubmitted(at time.Time) {
	p.Submitted = &at
}
