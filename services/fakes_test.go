package services

import (
	"context"
	"sync"

	"pickem-app-go/models"
)

// In-memory store fakes shared by the service tests.

type fakeSeasonStore struct {
	mu      sync.Mutex
	seasons map[string]*models.Season
}

func newFakeSeasonStore(seasons ...*models.Season) *fakeSeasonStore {
	s := &fakeSeasonStore{seasons: make(map[string]*models.Season)}
	for _, season := range seasons {
		s.seasons[season.Name] = season
	}
	return s
}

func (s *fakeSeasonStore) GetSeason(_ context.Context, name string) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	season, ok := s.seasons[name]
	if !ok {
		return nil, ErrSeasonNotFound
	}
	return season, nil
}

func (s *fakeSeasonStore) GetActiveSeason(_ context.Context) (*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, season := range s.seasons {
		if season.Active {
			return season, nil
		}
	}
	return nil, nil
}

func (s *fakeSeasonStore) GetAllSeasons(_ context.Context) ([]*models.Season, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Season, 0, len(s.seasons))
	for _, season := range s.seasons {
		out = append(out, season)
	}
	return out, nil
}

func (s *fakeSeasonStore) CreateSeason(_ context.Context, season *models.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.seasons[season.Name]; exists {
		return ErrSeasonExists
	}
	s.seasons[season.Name] = season
	return nil
}

func (s *fakeSeasonStore) SaveSeason(_ context.Context, season *models.Season) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.seasons[season.Name]
	if !ok {
		return ErrSeasonNotFound
	}
	if stored != season && stored.DocVersion != season.DocVersion {
		return ErrVersionConflict
	}
	season.DocVersion++
	s.seasons[season.Name] = season
	return nil
}

func (s *fakeSeasonStore) SetActiveSeason(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seasons[name]; !ok {
		return ErrSeasonNotFound
	}
	for _, season := range s.seasons {
		season.Active = season.Name == name
	}
	return nil
}

func (s *fakeSeasonStore) DeleteSeason(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seasons[name]; !ok {
		return ErrSeasonNotFound
	}
	delete(s.seasons, name)
	return nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User

	// onGetAllUsers, when set, runs before GetAllUsers returns. Tests use
	// it to land a concurrent write while a view computation is in flight.
	onGetAllUsers func()
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, user := range users {
		s.users[user.Username] = user
	}
	return s
}

func (s *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *fakeUserStore) GetAllUsers(_ context.Context) ([]*models.User, error) {
	if s.onGetAllUsers != nil {
		s.onGetAllUsers()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, nil
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return ErrAlreadyRegistered
	}
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; !ok {
		return ErrUserNotFound
	}
	s.users[user.Username] = user
	return nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, username)
	return nil
}

func (s *fakeUserStore) SavePickSubmission(_ context.Context, username string, week int, sub *models.PickSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return ErrUserNotFound
	}
	user.SetSubmission(week, sub)
	return nil
}

type fakePendingStore struct {
	mu      sync.Mutex
	pending map[string]*models.PendingUser
}

func newFakePendingStore() *fakePendingStore {
	return &fakePendingStore{pending: make(map[string]*models.PendingUser)}
}

func (s *fakePendingStore) GetPendingUsers(_ context.Context) ([]*models.PendingUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.PendingUser, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakePendingStore) GetPendingUser(_ context.Context, username string) (*models.PendingUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[username]
	if !ok {
		return nil, ErrPendingNotFound
	}
	return p, nil
}

func (s *fakePendingStore) CreatePendingUser(_ context.Context, pending *models.PendingUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.pending[pending.Username]; exists {
		return ErrAlreadyRegistered
	}
	s.pending[pending.Username] = pending
	return nil
}

func (s *fakePendingStore) DeletePendingUser(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[username]; !ok {
		return ErrPendingNotFound
	}
	delete(s.pending, username)
	return nil
}

// Test data helpers

func testGameSlate(count int) []models.Game {
	games := make([]models.Game, 0, count)
	teams := [][2]string{
		{"Duke", "Georgia"},
		{"Ohio State", "Michigan State"},
		{"Miami (FL)", "Miami (OH)"},
		{"Alabama", "Auburn"},
		{"Oregon", "Washington"},
	}
	for i := 0; i < count; i++ {
		pair := teams[i%len(teams)]
		games = append(games, models.Game{ID: i, Away: pair[0], Home: pair[1]})
	}
	return games
}

func testSeason(name string, weekNum int, games []models.Game) *models.Season {
	season := models.NewSeason(name)
	season.Active = true
	week := season.EnsureWeek(weekNum)
	week.Games = games
	return season
}

func testUser(username string, seasons ...string) *models.User {
	return &models.User{
		Username:    username,
		Email:       username + "@example.com",
		DisplayName: username,
		Approved:    true,
		Active:      true,
		Seasons:     seasons,
		Picks:       make(map[int]*models.PickSubmission),
	}
}
