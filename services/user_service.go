package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrMissingFields     = errors.New("all registration fields are required")
	ErrPendingNotFound   = errors.New("no pending registration with that name")
	ErrAlreadyRegistered = errors.New("a user with that name already exists")
)

// UserService handles registration, approval and account lifecycle
type UserService struct {
	userStore    UserStore
	pendingStore PendingUserStore
	seasonStore  SeasonStore
	logger       *logging.Logger
}

// NewUserService creates a new user service
func NewUserService(userStore UserStore, pendingStore PendingUserStore, seasonStore SeasonStore) *UserService {
	return &UserService{
		userStore:    userStore,
		pendingStore: pendingStore,
		seasonStore:  seasonStore,
		logger:       logging.WithPrefix("UserService"),
	}
}

// Register queues a new account for admin approval
func (s *UserService) Register(ctx context.Context, req models.RegistrationRequest) error {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return ErrMissingFields
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if existing, err := s.userStore.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return ErrEmailTaken
	}

	username := strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName)
	if existing, err := s.userStore.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return ErrAlreadyRegistered
	}

	// Hash up front so a plaintext password never reaches storage, not even
	// in the pending queue.
	var scratch models.User
	if err := scratch.HashPassword(req.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	pending := &models.PendingUser{
		Username:    username,
		Email:       email,
		Password:    scratch.Password,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DisplayName: username,
		RequestedAt: time.Now(),
	}
	if err := s.pendingStore.CreatePendingUser(ctx, pending); err != nil {
		return fmt.Errorf("failed to queue registration: %w", err)
	}

	s.logger.Infof("Registration queued for %s (%s)", username, email)
	return nil
}

// Approve promotes a pending registration to a full user, enrolled in the
// active season if one exists.
func (s *UserService) Approve(ctx context.Context, username string) error {
	pending, err := s.pendingStore.GetPendingUser(ctx, username)
	if err != nil || pending == nil {
		return ErrPendingNotFound
	}

	user := &models.User{
		Username:    pending.Username,
		Email:       pending.Email,
		Password:    pending.Password,
		FirstName:   pending.FirstName,
		LastName:    pending.LastName,
		DisplayName: pending.DisplayName,
		Approved:    true,
		Active:      true,
		Picks:       make(map[int]*models.PickSubmission),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if active, err := s.seasonStore.GetActiveSeason(ctx); err == nil && active != nil {
		user.Seasons = []string{active.Name}
	}

	if err := s.userStore.CreateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.pendingStore.DeletePendingUser(ctx, username); err != nil {
		return fmt.Errorf("failed to clear pending registration: %w", err)
	}

	s.logger.Infof("Approved user %s", username)
	return nil
}

// Reject drops a pending registration
func (s *UserService) Reject(ctx context.Context, username string) error {
	if err := s.pendingStore.DeletePendingUser(ctx, username); err != nil {
		return fmt.Errorf("failed to reject registration: %w", err)
	}
	s.logger.Infof("Rejected registration for %s", username)
	return nil
}

// SetActive archives or reactivates a user. Archived users stop counting
// toward standings and the pick reveal gate.
func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	user, err := s.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	user.Active = active
	user.UpdatedAt = time.Now()
	if err := s.userStore.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.Infof("User %s active=%t", username, active)
	return nil
}

// EnrollInSeason adds a season to the user's participation set
func (s *UserService) EnrollInSeason(ctx context.Context, username, seasonName string) error {
	user, err := s.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	for _, existing := range user.Seasons {
		if existing == seasonName {
			return nil
		}
	}
	user.Seasons = append(user.Seasons, seasonName)
	user.UpdatedAt = time.Now()
	return s.userStore.UpdateUser(ctx, user)
}

// ResetPassword sets a new password for a user (admin action)
func (s *UserService) ResetPassword(ctx context.Context, username, newPassword string) error {
	user, err := s.userStore.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if err := user.HashPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.UpdatedAt = time.Now()
	if err := s.userStore.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	s.logger.Infof("Password reset for %s", username)
	return nil
}

// Delete removes a user permanently
func (s *UserService) Delete(ctx context.Context, username string) error {
	if err := s.userStore.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Infof("Deleted user %s", username)
	return nil
}
