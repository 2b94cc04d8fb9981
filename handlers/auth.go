package handlers

import (
	"net/http"
	"os"
	"time"

	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"
)

// AuthHandler handles authentication and registration requests
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	logger      *logging.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		logger:      logging.WithPrefix("AuthHandler"),
	}
}

// Login handles JSON login requests and sets the auth cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq models.LoginRequest
	if err := decodeJSON(r, &loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	authResponse, err := h.authService.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		h.logger.Warnf("Login failed for %s: %v", loginReq.Email, err)
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.setAuthCookie(w, authResponse.Token)
	h.logger.Infof("User %s (%s) logged in", authResponse.User.Username, authResponse.User.Email)
	respondJSON(w, http.StatusOK, authResponse)
}

// Logout clears the auth cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteStrictMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Register queues a new account for admin approval
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.userService.Register(r.Context(), req); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "registration pending approval"})
}

// Me returns the current user's information
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, user.ToSafeUser())
}

// setAuthCookie sets the authentication cookie
func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteStrictMode,
	})
}

// cookieSecure decides the Secure flag: off when a proxy terminates TLS
func cookieSecure() bool {
	return os.Getenv("BEHIND_PROXY") != "true"
}
