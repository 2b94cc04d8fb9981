package services

import (
	"context"
	"errors"

	"pickem-app-go/models"
)

// ErrVersionConflict is returned when a season write carries a stale
// DocVersion, meaning another admin saved the document first.
var ErrVersionConflict = errors.New("season was modified by another writer, reload and retry")

// ErrUserNotFound is returned by stores when no user matches a lookup
var ErrUserNotFound = errors.New("user not found")

// SeasonStore is the persistence contract for season documents
type SeasonStore interface {
	GetSeason(ctx context.Context, name string) (*models.Season, error)
	GetActiveSeason(ctx context.Context) (*models.Season, error)
	GetAllSeasons(ctx context.Context) ([]*models.Season, error)
	CreateSeason(ctx context.Context, season *models.Season) error
	// SaveSeason persists the season if its DocVersion still matches the
	// stored document, then increments the version. Returns
	// ErrVersionConflict on a stale write.
	SaveSeason(ctx context.Context, season *models.Season) error
	SetActiveSeason(ctx context.Context, name string) error
	DeleteSeason(ctx context.Context, name string) error
}

// UserStore is the persistence contract for user documents
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, username string) error
	// SavePickSubmission writes one week's submission, including the cached
	// resolver results, without rewriting the rest of the user document.
	SavePickSubmission(ctx context.Context, username string, week int, sub *models.PickSubmission) error
}

// PendingUserStore is the persistence contract for the registration queue
type PendingUserStore interface {
	GetPendingUsers(ctx context.Context) ([]*models.PendingUser, error)
	GetPendingUser(ctx context.Context, username string) (*models.PendingUser, error)
	CreatePendingUser(ctx context.Context, pending *models.PendingUser) error
	DeletePendingUser(ctx context.Context, username string) error
}

// SettingsStore holds free-form admin settings such as the welcome message.
// GetSetting returns the empty string for keys that were never set.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
