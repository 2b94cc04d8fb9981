package services

import (
	"context"
	"fmt"
	"sort"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// StandingRow is one user's line in a standings table
type StandingRow struct {
	Username         string `json:"username"`
	DisplayName      string `json:"display_name"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	ConfidencePoints int    `json:"confidence_points"`
}

// WeeklyWinners is the winner group for one complete week. Ties on
// (wins, confidence) are reported as a group, never broken arbitrarily.
type WeeklyWinners struct {
	Week    int           `json:"week"`
	Winners []StandingRow `json:"winners"`
}

// StandingsService rolls per-week resolver output up into season standings
// and weekly-winner determinations. All rollups are pure functions of the
// stored document; the ctx-taking wrappers memoize them in the version-keyed
// view cache.
type StandingsService struct {
	seasonStore SeasonStore
	userStore   UserStore
	results     *ResultService
	cache       *ViewCache
	logger      *logging.Logger
}

// NewStandingsService creates a new standings service
func NewStandingsService(seasonStore SeasonStore, userStore UserStore, results *ResultService, cache *ViewCache) *StandingsService {
	return &StandingsService{
		seasonStore: seasonStore,
		userStore:   userStore,
		results:     results,
		cache:       cache,
		logger:      logging.WithPrefix("StandingsService"),
	}
}

// sortStandings orders rows by wins descending, ties broken by confidence
// points descending. A strictly tied remainder keeps input order: the policy
// defers further breaks to manual agreement.
func sortStandings(rows []StandingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].ConfidencePoints > rows[j].ConfidencePoints
	})
}

// ComputeSeasonStandings builds season standings for every eligible user.
// Every week with at least one declared winner counts, partial weeks
// included; undecided games are excluded from both wins and losses.
func (s *StandingsService) ComputeSeasonStandings(season *models.Season, users []*models.User) []StandingRow {
	rows := make([]StandingRow, 0, len(users))

	for _, user := range users {
		if !user.IsEligible(season.Name) {
			continue
		}

		row := StandingRow{Username: user.Username, DisplayName: user.DisplayName}
		for weekNum, week := range season.Weeks {
			if !week.HasResults() {
				continue
			}
			sub, ok := user.SubmissionFor(weekNum)
			if !ok {
				continue
			}
			result := s.results.ResolveWeek(week, sub)
			row.Wins += result.Correct
			row.Losses += s.results.LossesFor(week, sub, result.Correct)
			row.ConfidencePoints += result.ConfidencePoints
		}
		rows = append(rows, row)
	}

	sortStandings(rows)
	return rows
}

// ComputeWeekStandings builds the standings table for a single week
func (s *StandingsService) ComputeWeekStandings(season *models.Season, weekNum int, users []*models.User) []StandingRow {
	week, ok := season.Week(weekNum)
	if !ok || !week.HasResults() {
		return nil
	}

	rows := make([]StandingRow, 0, len(users))
	for _, user := range users {
		if !user.IsEligible(season.Name) {
			continue
		}
		sub, ok := user.SubmissionFor(weekNum)
		if !ok {
			continue
		}
		result := s.results.ResolveWeek(week, sub)
		rows = append(rows, StandingRow{
			Username:         user.Username,
			DisplayName:      user.DisplayName,
			Wins:             result.Correct,
			Losses:           s.results.LossesFor(week, sub, result.Correct),
			ConfidencePoints: result.ConfidencePoints,
		})
	}

	sortStandings(rows)
	return rows
}

// ComputeWeeklyWinners determines the winner group for every complete week.
// The winner set is every eligible submitting user tied with the maximum
// (wins, confidence) pair.
func (s *StandingsService) ComputeWeeklyWinners(season *models.Season, users []*models.User) []WeeklyWinners {
	weekNums := make([]int, 0, len(season.Weeks))
	for num, week := range season.Weeks {
		if week.IsComplete() {
			weekNums = append(weekNums, num)
		}
	}
	sort.Ints(weekNums)

	var winners []WeeklyWinners
	for _, num := range weekNums {
		rows := s.ComputeWeekStandings(season, num, users)
		if len(rows) == 0 {
			continue
		}

		top := rows[0]
		group := make([]StandingRow, 0, 1)
		for _, row := range rows {
			if row.Wins == top.Wins && row.ConfidencePoints == top.ConfidencePoints {
				group = append(group, row)
			}
		}
		winners = append(winners, WeeklyWinners{Week: num, Winners: group})
	}

	return winners
}

// AllPicksSubmitted reports whether every approved, active user has a
// non-empty submission for the week. Picks become visible to other
// participants only once this gate opens; the reveal is strictly
// all-or-nothing and independent of winners being declared.
func (s *StandingsService) AllPicksSubmitted(weekNum int, users []*models.User) bool {
	anyParticipant := false
	for _, user := range users {
		if !user.IsParticipating() {
			continue
		}
		anyParticipant = true
		sub, ok := user.SubmissionFor(weekNum)
		if !ok || !sub.HasPicks() {
			return false
		}
	}
	return anyParticipant
}

// SeasonStandings loads the season and users and returns memoized standings
func (s *StandingsService) SeasonStandings(ctx context.Context, seasonName string) ([]StandingRow, error) {
	cacheKey := fmt.Sprintf("standings:%s", seasonName)
	cached, version, ok := s.cache.Get(cacheKey)
	if ok {
		return cached.([]StandingRow), nil
	}

	season, users, err := s.loadSeasonAndUsers(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	rows := s.ComputeSeasonStandings(season, users)
	s.cache.Put(cacheKey, rows, version)
	return rows, nil
}

// WeekStandings loads the season and users and returns one week's table
func (s *StandingsService) WeekStandings(ctx context.Context, seasonName string, weekNum int) ([]StandingRow, error) {
	season, users, err := s.loadSeasonAndUsers(ctx, seasonName)
	if err != nil {
		return nil, err
	}
	return s.ComputeWeekStandings(season, weekNum, users), nil
}

// SeasonWeeklyWinners loads the season and users and returns memoized
// weekly-winner groups.
func (s *StandingsService) SeasonWeeklyWinners(ctx context.Context, seasonName string) ([]WeeklyWinners, error) {
	cacheKey := fmt.Sprintf("weekly-winners:%s", seasonName)
	cached, version, ok := s.cache.Get(cacheKey)
	if ok {
		return cached.([]WeeklyWinners), nil
	}

	season, users, err := s.loadSeasonAndUsers(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	winners := s.ComputeWeeklyWinners(season, users)
	s.cache.Put(cacheKey, winners, version)
	return winners, nil
}

func (s *StandingsService) loadSeasonAndUsers(ctx context.Context, seasonName string) (*models.Season, []*models.User, error) {
	season, err := s.seasonStore.GetSeason(ctx, seasonName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load season %q: %w", seasonName, err)
	}
	users, err := s.userStore.GetAllUsers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load users: %w", err)
	}
	return season, users, nil
}
