package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// TeamPerformance tracks one team's actual record next to how participants
// picked it, so a consumer can infer whether the team is disproportionately
// picked in its favorable matchups. Teams are grouped by canonical name.
type TeamPerformance struct {
	Team         string `json:"team"`
	Games        int    `json:"games"`
	Wins         int    `json:"wins"`
	TimesPicked  int    `json:"times_picked"`
	CorrectPicks int    `json:"correct_picks"`
}

// WinRate returns the team's actual win rate
func (t *TeamPerformance) WinRate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Games)
}

// PickSuccessRate returns how often a pick of this team was right
func (t *TeamPerformance) PickSuccessRate() float64 {
	if t.TimesPicked == 0 {
		return 0
	}
	return float64(t.CorrectPicks) / float64(t.TimesPicked)
}

// UserSeasonStats summarizes one user's season: win percentage, best and
// worst weeks, weekly-win consistency (standard deviation, lower is more
// consistent) and confidence efficiency (share of the 6 available points per
// week actually earned).
type UserSeasonStats struct {
	Username             string  `json:"username"`
	DisplayName          string  `json:"display_name"`
	WeeksScored          int     `json:"weeks_scored"`
	TotalWins            int     `json:"total_wins"`
	WinPercentage        float64 `json:"win_percentage"`
	BestWeek             int     `json:"best_week"`
	WorstWeek            int     `json:"worst_week"`
	Consistency          float64 `json:"consistency"`
	ConfidenceEfficiency float64 `json:"confidence_efficiency"`
}

// maxConfidencePerWeek is the total weight available per week (1+2+3)
const maxConfidencePerWeek = 6

// AnalyticsService produces retrospective season reports. Unlike the
// standings rollup, only complete weeks feed these analyses: team stats are a
// report over fully-decided data, not a live standings feed.
type AnalyticsService struct {
	seasonStore SeasonStore
	userStore   UserStore
	results     *ResultService
	cache       *ViewCache
	logger      *logging.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(seasonStore SeasonStore, userStore UserStore, results *ResultService, cache *ViewCache) *AnalyticsService {
	return &AnalyticsService{
		seasonStore: seasonStore,
		userStore:   userStore,
		results:     results,
		cache:       cache,
		logger:      logging.WithPrefix("AnalyticsService"),
	}
}

// ComputeTeamPerformance builds the per-team report for a season from
// complete weeks only, sorted by times picked descending.
func (s *AnalyticsService) ComputeTeamPerformance(season *models.Season, users []*models.User) []TeamPerformance {
	stats := make(map[string]*TeamPerformance)

	get := func(team string) *TeamPerformance {
		if t, ok := stats[team]; ok {
			return t
		}
		t := &TeamPerformance{Team: team}
		stats[team] = t
		return t
	}

	for weekNum, week := range season.Weeks {
		if !week.IsComplete() {
			continue
		}

		for _, game := range week.Games {
			winner, decided := week.WinnerFor(game.ID)
			if !decided {
				continue
			}

			away := models.CanonicalTeamName(game.Away)
			home := models.CanonicalTeamName(game.Home)
			winnerName := models.CanonicalTeamName(winner)

			for _, team := range []string{away, home} {
				if team == "" {
					continue
				}
				t := get(team)
				t.Games++
				if team == winnerName {
					t.Wins++
				}
			}

			for _, user := range users {
				if !user.IsEligible(season.Name) {
					continue
				}
				sub, ok := user.SubmissionFor(weekNum)
				if !ok {
					continue
				}
				pick, ok := sub.Picks[game.ID]
				if !ok {
					continue
				}

				pickName := models.CanonicalTeamName(pick)
				if pickName != away && pickName != home {
					continue
				}
				t := get(pickName)
				t.TimesPicked++
				if pickName == winnerName {
					t.CorrectPicks++
				}
			}
		}
	}

	report := make([]TeamPerformance, 0, len(stats))
	for _, t := range stats {
		report = append(report, *t)
	}
	sort.Slice(report, func(i, j int) bool {
		if report[i].TimesPicked != report[j].TimesPicked {
			return report[i].TimesPicked > report[j].TimesPicked
		}
		return report[i].Team < report[j].Team
	})
	return report
}

// ComputeUserStats builds per-user season statistics from complete weeks
func (s *AnalyticsService) ComputeUserStats(season *models.Season, users []*models.User) []UserSeasonStats {
	var out []UserSeasonStats

	for _, user := range users {
		if !user.IsEligible(season.Name) {
			continue
		}

		var weeklyWins []int
		totalGames := 0
		confEarned := 0

		for weekNum, week := range season.Weeks {
			if !week.IsComplete() {
				continue
			}
			sub, ok := user.SubmissionFor(weekNum)
			if !ok {
				continue
			}
			result := s.results.ResolveWeek(week, sub)
			weeklyWins = append(weeklyWins, result.Correct)
			totalGames += len(week.Games)
			confEarned += result.ConfidencePoints
		}

		if len(weeklyWins) == 0 {
			continue
		}

		stats := UserSeasonStats{
			Username:    user.Username,
			DisplayName: user.DisplayName,
			WeeksScored: len(weeklyWins),
			BestWeek:    weeklyWins[0],
			WorstWeek:   weeklyWins[0],
		}
		for _, wins := range weeklyWins {
			stats.TotalWins += wins
			if wins > stats.BestWeek {
				stats.BestWeek = wins
			}
			if wins < stats.WorstWeek {
				stats.WorstWeek = wins
			}
		}
		if totalGames > 0 {
			stats.WinPercentage = float64(stats.TotalWins) / float64(totalGames) * 100
		}
		stats.Consistency = stdDev(weeklyWins)
		stats.ConfidenceEfficiency = float64(confEarned) / float64(maxConfidencePerWeek*len(weeklyWins)) * 100

		out = append(out, stats)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].TotalWins > out[j].TotalWins })
	return out
}

// TeamPerformance loads the season and users and returns the memoized report
func (s *AnalyticsService) TeamPerformance(ctx context.Context, seasonName string) ([]TeamPerformance, error) {
	cacheKey := fmt.Sprintf("team-performance:%s", seasonName)
	cached, version, ok := s.cache.Get(cacheKey)
	if ok {
		return cached.([]TeamPerformance), nil
	}

	season, users, err := s.load(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	report := s.ComputeTeamPerformance(season, users)
	s.cache.Put(cacheKey, report, version)
	return report, nil
}

// UserStats loads the season and users and returns per-user statistics
func (s *AnalyticsService) UserStats(ctx context.Context, seasonName string) ([]UserSeasonStats, error) {
	cacheKey := fmt.Sprintf("user-stats:%s", seasonName)
	cached, version, ok := s.cache.Get(cacheKey)
	if ok {
		return cached.([]UserSeasonStats), nil
	}

	season, users, err := s.load(ctx, seasonName)
	if err != nil {
		return nil, err
	}

	stats := s.ComputeUserStats(season, users)
	s.cache.Put(cacheKey, stats, version)
	return stats, nil
}

func (s *AnalyticsService) load(ctx context.Context, seasonName string) (*models.Season, []*models.User, error) {
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

// stdDev returns the population standard deviation of weekly win counts
func stdDev(values []int) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
