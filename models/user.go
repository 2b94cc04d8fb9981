package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a participant. A user only contributes to standings for
// seasons they are enrolled in, and only while approved and active.
type User struct {
	Username    string                  `json:"username"`
	Email       string                  `json:"email"`
	Password    string                  `json:"-"` // bcrypt hash, never serialized
	FirstName   string                  `json:"first_name"`
	LastName    string                  `json:"last_name"`
	DisplayName string                  `json:"display_name"`
	Approved    bool                    `json:"approved"`
	Active      bool                    `json:"active"`
	IsAdmin     bool                    `json:"is_admin"`
	Seasons     []string                `json:"seasons"`
	Picks       map[int]*PickSubmission `json:"picks"` // week number → submission
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// LoginRequest represents login form data
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegistrationRequest represents a new-account request awaiting approval
type RegistrationRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PendingUser is a registration sitting in the approval queue
type PendingUser struct {
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	RequestedAt time.Time `json:"requested_at"`
}

// HashPassword hashes the user's password using bcrypt
func (u *User) HashPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// IsEligible reports whether the user counts toward standings for a season
func (u *User) IsEligible(season string) bool {
	if !u.Approved || !u.Active {
		return false
	}
	for _, s := range u.Seasons {
		if s == season {
			return true
		}
	}
	return false
}

// IsParticipating reports whether the user is approved and active, regardless
// of season enrollment. The pick reveal gate counts these users.
func (u *User) IsParticipating() bool {
	return u.Approved && u.Active
}

// SubmissionFor returns the user's submission for a week, if one exists
func (u *User) SubmissionFor(week int) (*PickSubmission, bool) {
	sub, ok := u.Picks[week]
	return sub, ok
}

// SetSubmission stores a submission for a week
func (u *User) SetSubmission(week int, sub *PickSubmission) {
	if u.Picks == nil {
		u.Picks = make(map[int]*PickSubmission)
	}
	u.Picks[week] = sub
	u.UpdatedAt = time.Now()
}

// ToSafeUser returns a copy of the user without credential fields
func (u *User) ToSafeUser() User {
	safe := *u
	safe.Password = ""
	return safe
}
