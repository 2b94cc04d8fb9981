package services

import (
	"context"
	"errors"
	"time"

	"pickem-app-go/models"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService handles authentication operations
type AuthService struct {
	userStore   UserStore
	jwtSecret   []byte
	tokenExpiry time.Duration
}

// JWTClaims represents the claims in our JWT token
type JWTClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// NewAuthService creates a new authentication service
func NewAuthService(userStore UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		userStore:   userStore,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: 30 * 24 * time.Hour,
	}
}

// Login authenticates a user and returns a JWT token
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := a.userStore.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, errors.New("invalid email or password")
	}

	if !user.CheckPassword(password) {
		return nil, errors.New("invalid email or password")
	}

	if !user.Approved {
		return nil, errors.New("account is pending approval")
	}

	token, err := a.GenerateToken(user)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &models.AuthResponse{
		User:  user.ToSafeUser(),
		Token: token,
	}, nil
}

// GenerateToken creates a new JWT token for the user
func (a *AuthService) GenerateToken(user *models.User) (string, error) {
	claims := JWTClaims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "pickem-app-go",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GetUserFromToken validates a token and returns the user it names
func (a *AuthService) GetUserFromToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := a.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := a.userStore.GetUserByUsername(ctx, claims.Username)
	if err != nil || user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}
