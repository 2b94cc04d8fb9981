package services

import (
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
)

func weekWithWinners(games []models.Game, winners map[int]string, complete bool) *models.Week {
	w := models.NewWeek()
	w.Games = games
	for id, winner := range winners {
		w.Winners[id] = winner
	}
	w.WinnersSet = complete
	return w
}

func TestResolveWeekNoResults(t *testing.T) {
	svc := NewResultService()
	week := weekWithWinners(testGameSlate(5), nil, false)
	sub := &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}),
	}

	result := svc.ResolveWeek(week, sub)
	assert.Zero(t, result.Correct)
	assert.Zero(t, result.ConfidencePoints)

	assert.Zero(t, svc.ResolveWeek(nil, sub))
	assert.Zero(t, svc.ResolveWeek(week, nil))
}

func TestResolveWeekCompleteWeek(t *testing.T) {
	svc := NewResultService()
	games := testGameSlate(5)
	winners := map[int]string{0: "Duke", 1: "Michigan State", 2: "Miami (FL)", 3: "Alabama", 4: "Washington"}
	week := weekWithWinners(games, winners, true)

	sub := &models.PickSubmission{
		// 0 correct, 1 wrong, 2 correct, 3 correct, 4 wrong
		Picks:      map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama", 4: "Oregon"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{3, 1}),
	}

	result := svc.ResolveWeek(week, sub)
	assert.Equal(t, 3, result.Correct)
	// Weight 3 on game 0 (correct) and weight 1 on game 3 (correct); the
	// weight 2 went to a wrong pick.
	assert.Equal(t, 4, result.ConfidencePoints)

	assert.Equal(t, 2, svc.LossesFor(week, sub, result.Correct))
}

func TestResolveWeekFullSlate(t *testing.T) {
	svc := NewResultService()
	games := testGameSlate(20)

	picks := make(map[int]string, len(games))
	winners := make(map[int]string, len(games))
	for _, g := range games {
		picks[g.ID] = g.Away
		if g.ID < 14 {
			winners[g.ID] = g.Away
		} else {
			winners[g.ID] = g.Home
		}
	}
	week := weekWithWinners(games, winners, true)

	sub := &models.PickSubmission{
		Picks: picks,
		// Weights 3 and 1 land on correct picks, weight 2 on a wrong one.
		Confidence: confidence([2]int{0, 3}, [2]int{14, 2}, [2]int{1, 1}),
	}

	result := svc.ResolveWeek(week, sub)
	assert.Equal(t, 14, result.Correct)
	assert.Equal(t, 4, result.ConfidencePoints)
	assert.Equal(t, 6, svc.LossesFor(week, sub, result.Correct))
}

func TestResolveWeekPartialWeek(t *testing.T) {
	svc := NewResultService()
	games := testGameSlate(5)
	// Only two games decided so far.
	winners := map[int]string{0: "Duke", 1: "Ohio State"}
	week := weekWithWinners(games, winners, false)

	sub := &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Michigan State", 2: "Miami (FL)", 3: "Alabama", 4: "Oregon"},
		Confidence: confidence([2]int{0, 2}, [2]int{2, 3}, [2]int{4, 1}),
	}

	result := svc.ResolveWeek(week, sub)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 2, result.ConfidencePoints)

	// Partial losses count only decided games: 2 decided − 1 correct.
	assert.Equal(t, 1, svc.LossesFor(week, sub, result.Correct))
}

func TestResolveWeekCanonicalizesNames(t *testing.T) {
	svc := NewResultService()
	games := []models.Game{
		{ID: 0, Away: "Ohio St.", Home: "Michigan St."},
		{ID: 1, Away: "Miami", Home: "Duke"},
	}
	winners := map[int]string{0: "**Ohio State (4)**", 1: "Miami (FL)"}
	week := weekWithWinners(games, winners, true)

	sub := &models.PickSubmission{
		Picks:      map[int]string{0: "Ohio St", 1: "Miami"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}),
	}

	result := svc.ResolveWeek(week, sub)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 5, result.ConfidencePoints)
}

func TestResolveWeekMonotonicAsGamesDecide(t *testing.T) {
	svc := NewResultService()
	games := testGameSlate(5)
	sub := &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama", 4: "Oregon"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}),
	}

	week := weekWithWinners(games, nil, false)
	prevCorrect, prevPoints := 0, 0
	decisions := []struct {
		gameID int
		winner string
	}{
		{0, "Duke"}, {1, "Michigan State"}, {2, "Miami (FL)"}, {3, "Alabama"}, {4, "Washington"},
	}
	for _, d := range decisions {
		week.Winners[d.gameID] = d.winner
		result := svc.ResolveWeek(week, sub)
		assert.GreaterOrEqual(t, result.Correct, prevCorrect)
		assert.GreaterOrEqual(t, result.ConfidencePoints, prevPoints)
		prevCorrect, prevPoints = result.Correct, result.ConfidencePoints
	}

	// Confidence points are always within the reachable 0..6 range.
	assert.LessOrEqual(t, prevPoints, 6)
}

func TestLossesForUnscoredWeek(t *testing.T) {
	svc := NewResultService()
	week := weekWithWinners(testGameSlate(3), nil, false)
	sub := &models.PickSubmission{Picks: map[int]string{0: "Duke"}}

	assert.Zero(t, svc.LossesFor(week, sub, 0))
	assert.Zero(t, svc.LossesFor(nil, sub, 0))
}

func TestRefreshCachedResults(t *testing.T) {
	svc := NewResultService()
	games := testGameSlate(3)
	week := weekWithWinners(games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}, true)

	submitter := testUser("alice", "2024")
	submitter.SetSubmission(1, &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (OH)"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}),
	})
	bystander := testUser("bob", "2024")

	changed := svc.RefreshCachedResults(week, 1, []*models.User{submitter, bystander})
	assert.Len(t, changed, 1)
	assert.Equal(t, "alice", changed[0].Username)

	sub, _ := submitter.SubmissionFor(1)
	assert.Equal(t, 2, sub.CorrectPicks)
	assert.Equal(t, 5, sub.ConfidencePoints)

	// A second refresh with unchanged winners reports nothing changed.
	changed = svc.RefreshCachedResults(week, 1, []*models.User{submitter, bystander})
	assert.Empty(t, changed)
}
