package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// LegacyDocument mirrors the flat pre-season JSON layout: weeks at the top
// level, participants instead of users, string-keyed maps throughout.
type LegacyDocument struct {
	Weeks        map[string]legacyWeek        `json:"weeks"`
	Participants map[string]legacyParticipant `json:"participants"`
}

type legacyGame struct {
	ID   int    `json:"id"`
	Away string `json:"away"`
	Home string `json:"home"`
	Date string `json:"date"`
}

type legacyWeek struct {
	Games      []legacyGame      `json:"games"`
	Winners    map[string]string `json:"winners"`
	WinnersSet bool              `json:"winners_set"`
}

type legacySubmission struct {
	Picks      map[string]string `json:"picks"`
	Confidence [][]int           `json:"confidence"`
	Submitted  string            `json:"submitted"`
}

type legacyParticipant struct {
	DisplayName string                      `json:"display_name"`
	Picks       map[string]legacySubmission `json:"picks"`
}

// MigrateLegacyDocument converts a flat legacy document into the
// season-keyed schema. It is a pure transform: string keys become typed int
// keys exactly once here, so no multi-representation lookups survive into
// the scoring core. Records that cannot be interpreted are skipped, not
// fatal.
func MigrateLegacyDocument(doc *LegacyDocument, seasonName string) (*models.Season, []*models.User, error) {
	if seasonName == "" {
		return nil, nil, fmt.Errorf("season name is required for migration")
	}

	season := models.NewSeason(seasonName)
	season.Active = true

	for weekKey, lw := range doc.Weeks {
		weekNum, err := strconv.Atoi(weekKey)
		if err != nil || weekNum < 1 {
			continue
		}

		week := season.EnsureWeek(weekNum)
		for _, g := range lw.Games {
			week.Games = append(week.Games, models.Game{
				ID:   g.ID,
				Away: g.Away,
				Home: g.Home,
				Date: g.Date,
			})
		}

		ids := week.GameIDs()
		for idKey, winner := range lw.Winners {
			gameID, err := strconv.Atoi(idKey)
			if err != nil || !ids[gameID] || winner == "" {
				continue
			}
			week.Winners[gameID] = winner
		}
		week.WinnersSet = len(week.Games) > 0 && week.DecidedCount() == len(week.Games)
	}

	users := make([]*models.User, 0, len(doc.Participants))
	for username, p := range doc.Participants {
		displayName := p.DisplayName
		if displayName == "" {
			displayName = username
		}

		user := &models.User{
			Username:    username,
			Email:       strings.ToLower(strings.ReplaceAll(username, " ", "")) + "@temp.invalid",
			DisplayName: displayName,
			Approved:    true,
			Active:      true,
			Seasons:     []string{seasonName},
			Picks:       make(map[int]*models.PickSubmission),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := user.HashPassword("changeme-" + strings.ToLower(strings.ReplaceAll(username, " ", ""))); err != nil {
			return nil, nil, fmt.Errorf("failed to hash placeholder password: %w", err)
		}

		for weekKey, ls := range p.Picks {
			weekNum, err := strconv.Atoi(weekKey)
			if err != nil || weekNum < 1 {
				continue
			}

			sub := &models.PickSubmission{Picks: make(map[int]string)}
			for idKey, pick := range ls.Picks {
				gameID, err := strconv.Atoi(idKey)
				if err != nil {
					continue
				}
				sub.Picks[gameID] = pick
			}
			for _, pair := range ls.Confidence {
				if len(pair) != 2 {
					continue
				}
				sub.Confidence = append(sub.Confidence, models.ConfidencePick{GameID: pair[0], Weight: pair[1]})
			}
			if ls.Submitted != "" {
				if at, err := time.Parse(time.RFC3339, ls.Submitted); err == nil {
					sub.MarkSubmitted(at)
				}
			}
			user.Picks[weekNum] = sub
		}

		users = append(users, user)
	}

	return season, users, nil
}

// LegacyImportService imports a legacy JSON document into the store
type LegacyImportService struct {
	seasonStore SeasonStore
	userStore   UserStore
	results     *ResultService
	cache       *ViewCache
	logger      *logging.Logger
}

// NewLegacyImportService creates a new legacy import service
func NewLegacyImportService(seasonStore SeasonStore, userStore UserStore, results *ResultService, cache *ViewCache) *LegacyImportService {
	return &LegacyImportService{
		seasonStore: seasonStore,
		userStore:   userStore,
		results:     results,
		cache:       cache,
		logger:      logging.WithPrefix("LegacyImport"),
	}
}

// ImportFile reads a legacy JSON file, migrates it to the current schema,
// recomputes cached results and persists the season and its users.
func (s *LegacyImportService) ImportFile(ctx context.Context, path, seasonName string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read legacy file: %w", err)
	}

	var doc LegacyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse legacy file: %w", err)
	}

	season, users, err := MigrateLegacyDocument(&doc, seasonName)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	for weekNum, week := range season.Weeks {
		s.results.RefreshCachedResults(week, weekNum, users)
	}

	if err := s.seasonStore.CreateSeason(ctx, season); err != nil {
		return fmt.Errorf("failed to store migrated season: %w", err)
	}
	for _, user := range users {
		if err := s.userStore.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("failed to store migrated user %s: %w", user.Username, err)
		}
	}
	s.cache.Bump()

	s.logger.Infof("Imported legacy document: season %s, %d weeks, %d users",
		seasonName, len(season.Weeks), len(users))
	return nil
}
