package services

import (
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsFixture(season *models.Season, users ...*models.User) *AnalyticsService {
	return NewAnalyticsService(newFakeSeasonStore(season), newFakeUserStore(users...), NewResultService(), NewViewCache())
}

func findTeam(report []TeamPerformance, team string) *TeamPerformance {
	for i := range report {
		if report[i].Team == team {
			return &report[i]
		}
	}
	return nil
}

func TestComputeTeamPerformanceGroupsByCanonicalName(t *testing.T) {
	// The same team appears under two spellings across two complete weeks.
	season := models.NewSeason("2024")
	season.Active = true

	week1 := season.EnsureWeek(1)
	week1.Games = []models.Game{{ID: 0, Away: "Ohio St.", Home: "Duke"}}
	week1.Winners = map[int]string{0: "Ohio St."}
	week1.WinnersSet = true

	week2 := season.EnsureWeek(2)
	week2.Games = []models.Game{{ID: 0, Away: "Georgia", Home: "Ohio State"}}
	week2.Winners = map[int]string{0: "Georgia"}
	week2.WinnersSet = true

	alice := testUser("alice", "2024")
	alice.SetSubmission(1, &models.PickSubmission{Picks: map[int]string{0: "Ohio St"}})
	alice.SetSubmission(2, &models.PickSubmission{Picks: map[int]string{0: "Ohio State"}})

	svc := newAnalyticsFixture(season, alice)
	report := svc.ComputeTeamPerformance(season, []*models.User{alice})

	osu := findTeam(report, "Ohio State")
	require.NotNil(t, osu)
	assert.Equal(t, 2, osu.Games)
	assert.Equal(t, 1, osu.Wins)
	assert.Equal(t, 2, osu.TimesPicked)
	assert.Equal(t, 1, osu.CorrectPicks)
	assert.InDelta(t, 0.5, osu.WinRate(), 0.0001)
	assert.InDelta(t, 0.5, osu.PickSuccessRate(), 0.0001)
}

func TestComputeTeamPerformanceIgnoresIncompleteWeeks(t *testing.T) {
	season := models.NewSeason("2024")
	week := season.EnsureWeek(1)
	week.Games = []models.Game{{ID: 0, Away: "Duke", Home: "Georgia"}, {ID: 1, Away: "Alabama", Home: "Auburn"}}
	week.Winners = map[int]string{0: "Duke"} // partial week

	svc := newAnalyticsFixture(season)
	report := svc.ComputeTeamPerformance(season, nil)
	assert.Empty(t, report)
}

func TestComputeTeamPerformanceSortedByTimesPicked(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}
	week.WinnersSet = true

	alice := testUser("alice", "2024")
	alice.SetSubmission(1, &models.PickSubmission{Picks: map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}})
	bob := testUser("bob", "2024")
	bob.SetSubmission(1, &models.PickSubmission{Picks: map[int]string{0: "Duke"}})

	svc := newAnalyticsFixture(season, alice, bob)
	report := svc.ComputeTeamPerformance(season, []*models.User{alice, bob})

	require.NotEmpty(t, report)
	assert.Equal(t, "Duke", report[0].Team)
	assert.Equal(t, 2, report[0].TimesPicked)
	for i := 1; i < len(report); i++ {
		assert.GreaterOrEqual(t, report[i-1].TimesPicked, report[i].TimesPicked)
	}
}

func TestComputeUserStats(t *testing.T) {
	games := testGameSlate(4)
	season := models.NewSeason("2024")
	season.Active = true
	for weekNum := 1; weekNum <= 2; weekNum++ {
		week := season.EnsureWeek(weekNum)
		week.Games = games
		week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama"}
		week.WinnersSet = true
	}

	alice := testUser("alice", "2024")
	// Week 1: all four correct, full 6 confidence points.
	alice.SetSubmission(1, &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}),
	})
	// Week 2: two correct, 3 of 6 confidence points.
	alice.SetSubmission(2, &models.PickSubmission{
		Picks:      map[int]string{0: "Duke", 1: "Michigan State", 2: "Miami (FL)", 3: "Auburn"},
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{3, 1}),
	})

	svc := newAnalyticsFixture(season, alice)
	stats := svc.ComputeUserStats(season, []*models.User{alice})

	require.Len(t, stats, 1)
	s := stats[0]
	assert.Equal(t, 2, s.WeeksScored)
	assert.Equal(t, 6, s.TotalWins)
	assert.InDelta(t, 75.0, s.WinPercentage, 0.0001) // 6 of 8
	assert.Equal(t, 4, s.BestWeek)
	assert.Equal(t, 2, s.WorstWeek)
	assert.InDelta(t, 1.0, s.Consistency, 0.0001) // population std dev of {4, 2}
	assert.InDelta(t, 75.0, s.ConfidenceEfficiency, 0.0001)
}

func TestComputeUserStatsSkipsUsersWithoutCompleteWeeks(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke"} // never completes

	alice := testUser("alice", "2024")
	alice.SetSubmission(1, &models.PickSubmission{Picks: map[int]string{0: "Duke"}})

	svc := newAnalyticsFixture(season, alice)
	stats := svc.ComputeUserStats(season, []*models.User{alice})
	assert.Empty(t, stats)
}
