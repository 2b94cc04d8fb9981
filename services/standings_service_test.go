package services

import (
	"context"
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStandingsFixture(season *models.Season, users ...*models.User) (*StandingsService, *ViewCache) {
	cache := NewViewCache()
	svc := NewStandingsService(newFakeSeasonStore(season), newFakeUserStore(users...), NewResultService(), cache)
	return svc, cache
}

// submitFor gives a user a complete submission for a week: picks every game
// with the away team and puts weights 3/2/1 on the first three games.
func submitFor(user *models.User, weekNum int, games []models.Game, picks map[int]string) {
	if picks == nil {
		picks = make(map[int]string)
		for _, g := range games {
			picks[g.ID] = g.Away
		}
	}
	user.SetSubmission(weekNum, &models.PickSubmission{
		Picks:      picks,
		Confidence: confidence([2]int{0, 3}, [2]int{1, 2}, [2]int{2, 1}),
	})
}

func TestComputeSeasonStandingsOrdering(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}
	week.WinnersSet = true

	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}) // 3 wins, 6 pts
	bob := testUser("bob", "2024")
	submitFor(bob, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (OH)"}) // 2 wins, 5 pts
	carol := testUser("carol", "2024")
	submitFor(carol, 1, games, map[int]string{0: "Georgia", 1: "Ohio State", 2: "Miami (FL)"}) // 2 wins, 3 pts

	svc, _ := newStandingsFixture(season, alice, bob, carol)
	rows := svc.ComputeSeasonStandings(season, []*models.User{alice, bob, carol})

	require.Len(t, rows, 3)
	assert.Equal(t, "alice", rows[0].Username)
	// Bob and Carol tie on wins; confidence points break the tie.
	assert.Equal(t, "bob", rows[1].Username)
	assert.Equal(t, "carol", rows[2].Username)

	assert.Equal(t, 3, rows[0].Wins)
	assert.Equal(t, 0, rows[0].Losses)
	assert.Equal(t, 6, rows[0].ConfidencePoints)
	assert.Equal(t, 1, rows[1].Losses)
}

func TestComputeSeasonStandingsSkipsIneligible(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke"}

	enrolled := testUser("alice", "2024")
	submitFor(enrolled, 1, games, nil)

	notEnrolled := testUser("bob") // approved but not in this season
	submitFor(notEnrolled, 1, games, nil)

	archived := testUser("carol", "2024")
	archived.Active = false
	submitFor(archived, 1, games, nil)

	svc, _ := newStandingsFixture(season, enrolled, notEnrolled, archived)
	rows := svc.ComputeSeasonStandings(season, []*models.User{enrolled, notEnrolled, archived})

	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].Username)
}

func TestComputeSeasonStandingsIncludesPartialWeeks(t *testing.T) {
	games := testGameSlate(4)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	// Two of four games decided; week stays partial.
	week.Winners = map[int]string{0: "Duke", 1: "Michigan State"}

	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)", 3: "Alabama"})

	svc, _ := newStandingsFixture(season, alice)
	rows := svc.ComputeSeasonStandings(season, []*models.User{alice})

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Wins)
	// Losses count only decided games: 2 decided − 1 correct.
	assert.Equal(t, 1, rows[0].Losses)
}

func TestComputeWeeklyWinnersTieGroup(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}
	week.WinnersSet = true

	// Alice and Bob finish identical; Carol trails.
	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"})
	bob := testUser("bob", "2024")
	submitFor(bob, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"})
	carol := testUser("carol", "2024")
	submitFor(carol, 1, games, map[int]string{0: "Georgia", 1: "Ohio State", 2: "Miami (FL)"})

	svc, _ := newStandingsFixture(season, alice, bob, carol)
	winners := svc.ComputeWeeklyWinners(season, []*models.User{alice, bob, carol})

	require.Len(t, winners, 1)
	assert.Equal(t, 1, winners[0].Week)
	require.Len(t, winners[0].Winners, 2)
	names := []string{winners[0].Winners[0].Username, winners[0].Winners[1].Username}
	assert.ElementsMatch(t, []string{"alice", "bob"}, names)
}

func TestComputeWeeklyWinnersIgnoresPartialWeeks(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke"} // partial

	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, nil)

	svc, _ := newStandingsFixture(season, alice)
	winners := svc.ComputeWeeklyWinners(season, []*models.User{alice})
	assert.Empty(t, winners)
}

func TestAllPicksSubmittedGate(t *testing.T) {
	games := testGameSlate(3)

	alice := testUser("alice", "2024")
	bob := testUser("bob", "2024")

	svc, _ := newStandingsFixture(testSeason("2024", 1, games), alice, bob)

	// Nobody has submitted.
	assert.False(t, svc.AllPicksSubmitted(1, []*models.User{alice, bob}))

	// One of two submitted: gate stays closed.
	submitFor(alice, 1, games, nil)
	assert.False(t, svc.AllPicksSubmitted(1, []*models.User{alice, bob}))

	// Everyone submitted: gate opens.
	submitFor(bob, 1, games, nil)
	assert.True(t, svc.AllPicksSubmitted(1, []*models.User{alice, bob}))

	// An archived user with no picks does not hold the gate closed.
	carol := testUser("carol", "2024")
	carol.Active = false
	assert.True(t, svc.AllPicksSubmitted(1, []*models.User{alice, bob, carol}))

	// No participants at all means nothing to reveal.
	assert.False(t, svc.AllPicksSubmitted(1, nil))
}

func TestSeasonStandingsWinnerSaveDuringComputeNotCached(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}
	week.WinnersSet = true

	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"})

	// The same season with game 0's winner corrected.
	corrected := testSeason("2024", 1, games)
	cweek, _ := corrected.Week(1)
	cweek.Winners = map[int]string{0: "Georgia", 1: "Ohio State", 2: "Miami (FL)"}
	cweek.WinnersSet = true

	cache := NewViewCache()
	seasonStore := newFakeSeasonStore(season)
	userStore := newFakeUserStore(alice)
	svc := NewStandingsService(seasonStore, userStore, NewResultService(), cache)
	ctx := context.Background()

	// The correction lands after the first computation has loaded the
	// season but before it stores its result.
	userStore.onGetAllUsers = func() {
		userStore.onGetAllUsers = nil
		seasonStore.seasons["2024"] = corrected
		cache.Bump()
	}

	raced, err := svc.SeasonStandings(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, raced, 1)
	// The in-flight call still sees the data it loaded.
	assert.Equal(t, 3, raced[0].Wins)

	// Its overtaken result must not have been published: the next read
	// recomputes against the corrected winners instead of serving it.
	fresh, err := svc.SeasonStandings(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, 2, fresh[0].Wins)
}

func TestSeasonStandingsMemoized(t *testing.T) {
	games := testGameSlate(3)
	season := testSeason("2024", 1, games)
	week, _ := season.Week(1)
	week.Winners = map[int]string{0: "Duke", 1: "Ohio State", 2: "Miami (FL)"}
	week.WinnersSet = true

	alice := testUser("alice", "2024")
	submitFor(alice, 1, games, nil)

	svc, cache := newStandingsFixture(season, alice)
	ctx := context.Background()

	first, err := svc.SeasonStandings(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Mutate the season behind the cache's back; the memoized view persists
	// until a bump.
	week.Winners[0] = "Georgia"
	cached, err := svc.SeasonStandings(ctx, "2024")
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	cache.Bump()
	fresh, err := svc.SeasonStandings(ctx, "2024")
	require.NoError(t, err)
	assert.NotEqual(t, first[0].Wins, fresh[0].Wins)
}
