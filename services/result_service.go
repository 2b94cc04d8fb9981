package services

import (
	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// WeekResult is the resolver output for one user, one week
type WeekResult struct {
	Correct          int `json:"correct"`
	ConfidencePoints int `json:"confidence_points"`
}

// ResultService turns raw (picks, confidence, declared-winners) triples into
// per-week results. It is a pure reader: it never mutates weeks or
// submissions except through the explicit cache-refresh path.
type ResultService struct {
	logger *logging.Logger
}

// NewResultService creates a new result service
func NewResultService() *ResultService {
	return &ResultService{logger: logging.WithPrefix("ResultService")}
}

// ResolveWeek computes (correct picks, confidence points) for one submission
// against one week's declared winners.
//
// A week with no winners at all resolves to (0, 0); "no result yet" is a
// valid, common state, not an error. Partial weeks resolve game by game:
// undecided games contribute nothing to either counter. Winner and pick are
// both canonicalized before comparison.
func (s *ResultService) ResolveWeek(week *models.Week, sub *models.PickSubmission) WeekResult {
	var result WeekResult

	if week == nil || sub == nil || !week.HasResults() {
		return result
	}

	for gameID, pick := range sub.Picks {
		winner, decided := week.WinnerFor(gameID)
		if !decided {
			continue
		}
		if models.SameTeam(winner, pick) {
			result.Correct++
			if weight, ok := sub.ConfidenceFor(gameID); ok {
				result.ConfidencePoints += weight
			}
		}
	}

	return result
}

// LossesFor computes the loss count for a submission against a week,
// following the partial-week accounting rule: only decided games count.
//
//   - complete week: losses = games picked − correct
//   - partial week:  losses = games decided so far − correct
//
// Undecided games are "not yet counted", never assumed losses.
func (s *ResultService) LossesFor(week *models.Week, sub *models.PickSubmission, correct int) int {
	if week == nil || sub == nil || !week.HasResults() {
		return 0
	}
	if week.IsComplete() {
		if len(sub.Picks) == 0 {
			return 0
		}
		return len(sub.Picks) - correct
	}
	return week.DecidedCount() - correct
}

// RefreshCachedResults re-resolves the week for every user holding a
// submission and rewrites the cached correct-pick and confidence-point
// totals. It must be called whenever winners are (re-)saved for the week so
// stored totals stay consistent with the latest winner data. Returns the
// users whose cached values changed.
func (s *ResultService) RefreshCachedResults(week *models.Week, weekNum int, users []*models.User) []*models.User {
	var changed []*models.User

	for _, user := range users {
		sub, ok := user.SubmissionFor(weekNum)
		if !ok {
			continue
		}

		result := s.ResolveWeek(week, sub)
		if sub.CorrectPicks == result.Correct && sub.ConfidencePoints == result.ConfidencePoints {
			continue
		}

		sub.CorrectPicks = result.Correct
		sub.ConfidencePoints = result.ConfidencePoints
		changed = append(changed, user)

		s.logger.Debugf("Week %d results for %s: %d correct, %d confidence points",
			weekNum, user.Username, result.Correct, result.ConfidencePoints)
	}

	return changed
}
