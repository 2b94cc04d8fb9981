package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

var (
	ErrNoActiveSeason   = errors.New("no active season")
	ErrSeasonLocked     = errors.New("season is locked")
	ErrNotEnrolled      = errors.New("user is not enrolled in the active season")
	ErrNotApproved      = errors.New("user is not approved or not active")
	ErrWeekNotReady     = errors.New("games are not set for this week yet")
	ErrAlreadySubmitted = errors.New("picks already submitted for this week, contact an admin for changes")
	ErrPicksHidden      = errors.New("other picks are hidden until every participant has submitted")
)

// UserWeekPicks is one user's submission prepared for display to others
type UserWeekPicks struct {
	Username         string                  `json:"username"`
	DisplayName      string                  `json:"display_name"`
	Picks            map[int]string          `json:"picks"`
	Confidence       []models.ConfidencePick `json:"confidence"`
	CorrectPicks     int                     `json:"correct_picks"`
	ConfidencePoints int                     `json:"confidence_points"`
}

// WeekSlate describes the current week's games split by lock state, so a
// client knows which picks it must collect.
type WeekSlate struct {
	Week        int           `json:"week"`
	Games       []models.Game `json:"games"`
	OpenGameIDs []int         `json:"open_game_ids"`
	LockedIDs   []int         `json:"locked_game_ids"`
}

// PickService accepts and exposes pick submissions. Submission is the only
// participant-facing mutation point; everything downstream of it is a pure
// read.
type PickService struct {
	seasonStore SeasonStore
	userStore   UserStore
	standings   *StandingsService
	results     *ResultService
	locks       *LockService
	cache       *ViewCache
	logger      *logging.Logger
}

// NewPickService creates a new pick service
func NewPickService(seasonStore SeasonStore, userStore UserStore, standings *StandingsService,
	results *ResultService, locks *LockService, cache *ViewCache) *PickService {
	return &PickService{
		seasonStore: seasonStore,
		userStore:   userStore,
		standings:   standings,
		results:     results,
		locks:       locks,
		cache:       cache,
		logger:      logging.WithPrefix("PickService"),
	}
}

// GetWeekSlate returns the week's games with their lock state as of now
func (s *PickService) GetWeekSlate(ctx context.Context, weekNum int) (*WeekSlate, error) {
	_, week, err := s.activeWeek(ctx, weekNum)
	if err != nil {
		return nil, err
	}

	slate := &WeekSlate{Week: weekNum, Games: week.Games}
	now := time.Now()
	for _, game := range week.Games {
		if s.locks.IsLockedAt(game.Date, now) {
			slate.LockedIDs = append(slate.LockedIDs, game.ID)
		} else {
			slate.OpenGameIDs = append(slate.OpenGameIDs, game.ID)
		}
	}
	return slate, nil
}

// SubmitPicks validates and stores a participant's submission for a week of
// the active season. Locked games are excluded from the required set at
// submission time; once submitted, the pick set is immutable except through
// AdminSetPicks.
func (s *PickService) SubmitPicks(ctx context.Context, username string, weekNum int,
	picks map[int]string, confidence []models.ConfidencePick) error {

	user, err := s.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsParticipating() {
		return ErrNotApproved
	}

	season, week, err := s.activeWeek(ctx, weekNum)
	if err != nil {
		return err
	}
	if season.Locked {
		return ErrSeasonLocked
	}
	if !user.IsEligible(season.Name) {
		return ErrNotEnrolled
	}

	if existing, ok := user.SubmissionFor(weekNum); ok && existing.IsSubmitted() {
		return ErrAlreadySubmitted
	}

	required := make(map[int]bool)
	now := time.Now()
	for _, game := range week.Games {
		if !s.locks.IsLockedAt(game.Date, now) {
			required[game.ID] = true
		}
	}

	if err := ValidatePickSubmission(picks, confidence, required); err != nil {
		return err
	}

	sub := &models.PickSubmission{Picks: picks, Confidence: confidence}
	sub.MarkSubmitted(now)

	// Late submissions against an already-scored week pick up results
	// immediately instead of waiting for the next winner save.
	result := s.results.ResolveWeek(week, sub)
	sub.CorrectPicks = result.Correct
	sub.ConfidencePoints = result.ConfidencePoints

	if err := s.userStore.SavePickSubmission(ctx, username, weekNum, sub); err != nil {
		return fmt.Errorf("failed to save picks: %w", err)
	}
	s.cache.Bump()

	s.logger.Infof("User %s submitted %d picks for week %d", username, len(picks), weekNum)
	return nil
}

// AdminSetPicks is the administrative override path: it bypasses the lock
// exclusion and the submitted-immutability rule, but the confidence invariant
// still holds. All games on the slate are required.
func (s *PickService) AdminSetPicks(ctx context.Context, username string, weekNum int,
	picks map[int]string, confidence []models.ConfidencePick) error {

	if _, err := s.userStore.GetUserByUsername(ctx, username); err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	_, week, err := s.activeWeek(ctx, weekNum)
	if err != nil {
		return err
	}

	if err := ValidatePickSubmission(picks, confidence, week.GameIDs()); err != nil {
		return err
	}

	sub := &models.PickSubmission{Picks: picks, Confidence: confidence}
	sub.MarkSubmitted(time.Now())

	result := s.results.ResolveWeek(week, sub)
	sub.CorrectPicks = result.Correct
	sub.ConfidencePoints = result.ConfidencePoints

	if err := s.userStore.SavePickSubmission(ctx, username, weekNum, sub); err != nil {
		return fmt.Errorf("failed to save picks: %w", err)
	}
	s.cache.Bump()

	s.logger.Infof("Admin set picks for %s, week %d", username, weekNum)
	return nil
}

// VisibleWeekPicks returns every participant's submission for a week, but
// only once the all-picks-submitted gate is open. Admins see picks
// regardless of the gate.
func (s *PickService) VisibleWeekPicks(ctx context.Context, weekNum int, viewer *models.User) ([]UserWeekPicks, error) {
	if _, _, err := s.activeWeek(ctx, weekNum); err != nil {
		return nil, err
	}

	users, err := s.userStore.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if viewer == nil || !viewer.IsAdmin {
		if !s.standings.AllPicksSubmitted(weekNum, users) {
			return nil, ErrPicksHidden
		}
	}

	var out []UserWeekPicks
	for _, user := range users {
		if !user.IsParticipating() {
			continue
		}
		sub, ok := user.SubmissionFor(weekNum)
		if !ok || !sub.HasPicks() {
			continue
		}
		out = append(out, UserWeekPicks{
			Username:         user.Username,
			DisplayName:      user.DisplayName,
			Picks:            sub.Picks,
			Confidence:       sub.Confidence,
			CorrectPicks:     sub.CorrectPicks,
			ConfidencePoints: sub.ConfidencePoints,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

// activeWeek loads the active season and the requested week, requiring the
// week's slate to be set.
func (s *PickService) activeWeek(ctx context.Context, weekNum int) (*models.Season, *models.Week, error) {
	season, err := s.seasonStore.GetActiveSeason(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load active season: %w", err)
	}
	if season == nil {
		return nil, nil, ErrNoActiveSeason
	}
	week, ok := season.Week(weekNum)
	if !ok || !week.HasGames() {
		return nil, nil, ErrWeekNotReady
	}
	return season, week, nil
}
