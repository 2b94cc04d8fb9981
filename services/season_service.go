package services

import (
	"context"
	"errors"
	"fmt"

	"pickem-app-go/logging"
	"pickem-app-go/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	ErrSeasonExists    = errors.New("season already exists")
	ErrSeasonNotFound  = errors.New("season not found")
	ErrWrongGameCount  = errors.New("a week requires the full slate of games")
	ErrWeekScored      = errors.New("week already has winners, games can no longer be re-entered")
	ErrUnknownGame     = errors.New("winner declared for a game that is not on the slate")
	ErrWinnerNotInGame = errors.New("declared winner is not one of the game's teams")
	ErrBadWeekNumber   = errors.New("week number out of range")
)

// SeasonService owns the administrative write path: season lifecycle, game
// slates and winner declarations. Saving winners is the point where every
// submitting user's cached results are recomputed.
type SeasonService struct {
	seasonStore    SeasonStore
	userStore      UserStore
	results        *ResultService
	cache          *ViewCache
	weeksPerSeason int
	gamesPerWeek   int
	logger         *logging.Logger
}

// NewSeasonService creates a new season service
func NewSeasonService(seasonStore SeasonStore, userStore UserStore, results *ResultService,
	cache *ViewCache, weeksPerSeason, gamesPerWeek int) *SeasonService {
	return &SeasonService{
		seasonStore:    seasonStore,
		userStore:      userStore,
		results:        results,
		cache:          cache,
		weeksPerSeason: weeksPerSeason,
		gamesPerWeek:   gamesPerWeek,
		logger:         logging.WithPrefix("SeasonService"),
	}
}

// CreateSeason creates a new, inactive season
func (s *SeasonService) CreateSeason(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("season name is required")
	}
	season := models.NewSeason(name)
	if err := s.seasonStore.CreateSeason(ctx, season); err != nil {
		return fmt.Errorf("failed to create season %q: %w", name, err)
	}
	s.logger.Infof("Created season %s", name)
	return nil
}

// SetActiveSeason activates a season, deactivating every other one
func (s *SeasonService) SetActiveSeason(ctx context.Context, name string) error {
	if err := s.seasonStore.SetActiveSeason(ctx, name); err != nil {
		return fmt.Errorf("failed to activate season %q: %w", name, err)
	}
	s.cache.Bump()
	s.logger.Infof("Season %s is now active", name)
	return nil
}

// SetSeasonLocked locks or unlocks a season. Locked seasons reject every
// write, participant and admin alike.
func (s *SeasonService) SetSeasonLocked(ctx context.Context, name string, locked bool) error {
	season, err := s.seasonStore.GetSeason(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to load season %q: %w", name, err)
	}
	season.Locked = locked
	if err := s.seasonStore.SaveSeason(ctx, season); err != nil {
		return err
	}
	s.logger.Infof("Season %s locked=%t", name, locked)
	return nil
}

// SaveGames batch-saves a week's slate. The batch must contain exactly the
// configured number of games; slates are re-enterable until the first winner
// is declared. Game ids are assigned by slate position.
func (s *SeasonService) SaveGames(ctx context.Context, seasonName string, weekNum int, games []models.Game) error {
	if weekNum < 1 || weekNum > s.weeksPerSeason {
		return fmt.Errorf("%w: %d", ErrBadWeekNumber, weekNum)
	}
	if len(games) != s.gamesPerWeek {
		return fmt.Errorf("%w: got %d of %d", ErrWrongGameCount, len(games), s.gamesPerWeek)
	}
	for i := range games {
		if games[i].Away == "" || games[i].Home == "" {
			return fmt.Errorf("%w: game %d is missing a team", ErrWrongGameCount, i+1)
		}
		games[i].ID = i
	}

	season, err := s.seasonStore.GetSeason(ctx, seasonName)
	if err != nil {
		return fmt.Errorf("failed to load season %q: %w", seasonName, err)
	}
	if season.Locked {
		return ErrSeasonLocked
	}

	week := season.EnsureWeek(weekNum)
	if week.HasResults() {
		return ErrWeekScored
	}
	week.Games = games

	if err := s.seasonStore.SaveSeason(ctx, season); err != nil {
		return err
	}
	s.cache.Bump()

	s.logger.Infof("Saved %d games for %s week %d", len(games), seasonName, weekNum)
	return nil
}

// SaveWinners merges declared winners into a week, incrementally or in
// batch. The week flips to complete exactly when every game has a winner.
// Re-opening a complete week by re-saving is allowed; cached per-user
// results are recomputed either way so downstream aggregates stay
// consistent with the latest winner data.
func (s *SeasonService) SaveWinners(ctx context.Context, seasonName string, weekNum int, winners map[int]string) error {
	season, err := s.seasonStore.GetSeason(ctx, seasonName)
	if err != nil {
		return fmt.Errorf("failed to load season %q: %w", seasonName, err)
	}
	if season.Locked {
		return ErrSeasonLocked
	}

	week, ok := season.Week(weekNum)
	if !ok || !week.HasGames() {
		return ErrWeekNotReady
	}

	for gameID, winner := range winners {
		game, ok := week.GameByID(gameID)
		if !ok {
			return fmt.Errorf("%w: game %d", ErrUnknownGame, gameID)
		}
		resolved, err := s.resolveWinnerName(game, winner)
		if err != nil {
			return err
		}
		week.Winners[gameID] = resolved
	}
	week.WinnersSet = week.DecidedCount() == len(week.Games)

	if err := s.seasonStore.SaveSeason(ctx, season); err != nil {
		return err
	}

	if err := s.refreshResults(ctx, week, weekNum); err != nil {
		return err
	}
	s.cache.Bump()

	s.logger.Infof("Saved winners for %s week %d: %d/%d decided (complete=%t)",
		seasonName, weekNum, week.DecidedCount(), len(week.Games), week.WinnersSet)
	return nil
}

// resolveWinnerName snaps a declared winner onto one of the game's teams.
// Canonical equality wins outright; otherwise a fuzzy match tolerates admin
// typos. A name matching neither team is rejected rather than stored.
func (s *SeasonService) resolveWinnerName(game *models.Game, raw string) (string, error) {
	if models.SameTeam(raw, game.Away) {
		return game.Away, nil
	}
	if models.SameTeam(raw, game.Home) {
		return game.Home, nil
	}

	canon := models.CanonicalTeamName(raw)
	awayRank := fuzzy.RankMatchNormalizedFold(canon, models.CanonicalTeamName(game.Away))
	homeRank := fuzzy.RankMatchNormalizedFold(canon, models.CanonicalTeamName(game.Home))

	switch {
	case awayRank >= 0 && (homeRank < 0 || awayRank <= homeRank):
		s.logger.Warnf("Fuzzy-matched winner %q to %q for game %d", raw, game.Away, game.ID)
		return game.Away, nil
	case homeRank >= 0:
		s.logger.Warnf("Fuzzy-matched winner %q to %q for game %d", raw, game.Home, game.ID)
		return game.Home, nil
	default:
		return "", fmt.Errorf("%w: %q is neither %q nor %q", ErrWinnerNotInGame, raw, game.Away, game.Home)
	}
}

// refreshResults rewrites every submitting user's cached week results
func (s *SeasonService) refreshResults(ctx context.Context, week *models.Week, weekNum int) error {
	users, err := s.userStore.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users for result refresh: %w", err)
	}

	changed := s.results.RefreshCachedResults(week, weekNum, users)
	for _, user := range changed {
		sub, _ := user.SubmissionFor(weekNum)
		if err := s.userStore.SavePickSubmission(ctx, user.Username, weekNum, sub); err != nil {
			return fmt.Errorf("failed to persist results for %s: %w", user.Username, err)
		}
	}

	if len(changed) > 0 {
		s.logger.Infof("Refreshed cached results for %d users, week %d", len(changed), weekNum)
	}
	return nil
}
