package middleware

import (
	"context"
	"net/http"
	"pickem-app-go/models"
	"pickem-app-go/services"
	"strings"
)

// UserContextKey is the key used to store user in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth middleware that requires authentication
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin requires an authenticated admin user
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth adds the user to the context when a valid token is present,
// and passes the request through either way.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := m.getUserFromRequest(r)
		if user != nil {
			ctx := context.WithValue(r.Context(), UserKey, user)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// getUserFromRequest extracts and validates user from request
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	// Try to get token from Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return m.authService.GetUserFromToken(r.Context(), parts[1])
		}
	}

	// Try to get token from cookie
	cookie, err := r.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return m.authService.GetUserFromToken(r.Context(), cookie.Value)
	}

	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the authenticated user from request context
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// IsAuthenticated checks if the request has an authenticated user
func IsAuthenticated(r *http.Request) bool {
	return GetUserFromContext(r) != nil
}
