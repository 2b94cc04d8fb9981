package handlers

import (
	"net/http"

	"pickem-app-go/logging"
	"pickem-app-go/middleware"
	"pickem-app-go/models"
	"pickem-app-go/services"

	"github.com/gorilla/mux"
)

// AdminHandler groups the administrative endpoints: season lifecycle, slate
// and winner entry, the registration queue, user management and settings.
// Routes using it are mounted behind RequireAdmin.
type AdminHandler struct {
	seasonStore   services.SeasonStore
	pendingStore  services.PendingUserStore
	settingsStore services.SettingsStore
	userStore     services.UserStore
	seasonService *services.SeasonService
	pickService   *services.PickService
	userService   *services.UserService
	logger        *logging.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(seasonStore services.SeasonStore, pendingStore services.PendingUserStore,
	settingsStore services.SettingsStore, userStore services.UserStore,
	seasonService *services.SeasonService, pickService *services.PickService,
	userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		seasonStore:   seasonStore,
		pendingStore:  pendingStore,
		settingsStore: settingsStore,
		userStore:     userStore,
		seasonService: seasonService,
		pickService:   pickService,
		userService:   userService,
		logger:        logging.WithPrefix("AdminHandler"),
	}
}

// seasonSummary is the list view of a season
type seasonSummary struct {
	Name           string `json:"name"`
	Active         bool   `json:"active"`
	Locked         bool   `json:"locked"`
	CompletedWeeks int    `json:"completed_weeks"`
}

// ListSeasons returns every season with its status
func (h *AdminHandler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.seasonStore.GetAllSeasons(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]seasonSummary, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, seasonSummary{
			Name:           s.Name,
			Active:         s.Active,
			Locked:         s.Locked,
			CompletedWeeks: s.CompletedWeeks(),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateSeason creates a new, inactive season
func (h *AdminHandler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.seasonService.CreateSeason(r.Context(), req.Name); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "season created"})
}

// ActivateSeason makes the named season the active one
func (h *AdminHandler) ActivateSeason(w http.ResponseWriter, r *http.Request) {
	if err := h.seasonService.SetActiveSeason(r.Context(), mux.Vars(r)["name"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "season activated"})
}

// LockSeason locks or unlocks a season
func (h *AdminHandler) LockSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Locked bool `json:"locked"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.seasonService.SetSeasonLocked(r.Context(), mux.Vars(r)["name"], req.Locked); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"locked": req.Locked})
}

// DeleteSeason removes a season permanently
func (h *AdminHandler) DeleteSeason(w http.ResponseWriter, r *http.Request) {
	if err := h.seasonStore.DeleteSeason(r.Context(), mux.Vars(r)["name"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "season deleted"})
}

// SaveGames batch-saves a week's full slate
func (h *AdminHandler) SaveGames(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Games []models.Game `json:"games"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.seasonService.SaveGames(r.Context(), mux.Vars(r)["name"], week, req.Games); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "games saved"})
}

// SaveWinners merges declared winners into a week
func (h *AdminHandler) SaveWinners(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req struct {
		Winners map[int]string `json:"winners"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.seasonService.SaveWinners(r.Context(), mux.Vars(r)["name"], week, req.Winners); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "winners saved"})
}

// SetUserPicks is the admin override for a user's weekly submission
func (h *AdminHandler) SetUserPicks(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req pickSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	username := mux.Vars(r)["username"]
	if err := h.pickService.AdminSetPicks(r.Context(), username, week, req.Picks, req.Confidence); err != nil {
		respondServiceError(w, err)
		return
	}

	admin := middleware.GetUserFromContext(r)
	h.logger.Infof("Admin %s set picks for %s, week %d", admin.Username, username, week)
	respondJSON(w, http.StatusOK, map[string]string{"status": "picks saved"})
}

// ListPendingUsers returns the registration queue
func (h *AdminHandler) ListPendingUsers(w http.ResponseWriter, r *http.Request) {
	pending, err := h.pendingStore.GetPendingUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pending)
}

// ApproveUser promotes a pending registration to a full user
func (h *AdminHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Approve(r.Context(), mux.Vars(r)["username"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "user approved"})
}

// RejectUser drops a pending registration
func (h *AdminHandler) RejectUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Reject(r.Context(), mux.Vars(r)["username"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "registration rejected"})
}

// ListUsers returns every user without credential fields
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.GetAllUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToSafeUser())
	}
	respondJSON(w, http.StatusOK, out)
}

// SetUserActive archives or reactivates a user
func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.userService.SetActive(r.Context(), mux.Vars(r)["username"], req.Active); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// EnrollUser adds a user to a season
func (h *AdminHandler) EnrollUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season string `json:"season"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.userService.EnrollInSeason(r.Context(), mux.Vars(r)["username"], req.Season); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "user enrolled"})
}

// ResetUserPassword sets a new password for a user
func (h *AdminHandler) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Password == "" {
		respondError(w, http.StatusBadRequest, "password is required")
		return
	}

	if err := h.userService.ResetPassword(r.Context(), mux.Vars(r)["username"], req.Password); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password reset"})
}

// DeleteUser removes a user permanently
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), mux.Vars(r)["username"]); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "user deleted"})
}

// SetWelcome stores the landing-page welcome message
func (h *AdminHandler) SetWelcome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.settingsStore.SetSetting(r.Context(), welcomeMessageKey, req.Message); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "welcome message saved"})
}
