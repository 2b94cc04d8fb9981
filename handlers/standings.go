package handlers

import (
	"net/http"

	"pickem-app-go/logging"
	"pickem-app-go/services"
)

// welcomeMessageKey is the settings key for the landing-page message
const welcomeMessageKey = "welcome_message"

// StandingsHandler serves standings, weekly winners and season analytics.
// Every endpoint resolves against the active season unless a ?season= query
// parameter names another one.
type StandingsHandler struct {
	seasonStore   services.SeasonStore
	settingsStore services.SettingsStore
	standings     *services.StandingsService
	analytics     *services.AnalyticsService
	logger        *logging.Logger
}

// NewStandingsHandler creates a new standings handler
func NewStandingsHandler(seasonStore services.SeasonStore, settingsStore services.SettingsStore,
	standings *services.StandingsService, analytics *services.AnalyticsService) *StandingsHandler {
	return &StandingsHandler{
		seasonStore:   seasonStore,
		settingsStore: settingsStore,
		standings:     standings,
		analytics:     analytics,
		logger:        logging.WithPrefix("StandingsHandler"),
	}
}

// seasonName resolves the season the request targets
func (h *StandingsHandler) seasonName(r *http.Request) (string, error) {
	if name := r.URL.Query().Get("season"); name != "" {
		return name, nil
	}
	season, err := h.seasonStore.GetActiveSeason(r.Context())
	if err != nil {
		return "", err
	}
	if season == nil {
		return "", services.ErrNoActiveSeason
	}
	return season.Name, nil
}

// GetSeasonStandings returns the season standings table
func (h *StandingsHandler) GetSeasonStandings(w http.ResponseWriter, r *http.Request) {
	name, err := h.seasonName(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows, err := h.standings.SeasonStandings(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetWeekStandings returns one week's standings table
func (h *StandingsHandler) GetWeekStandings(w http.ResponseWriter, r *http.Request) {
	week, err := weekParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, err := h.seasonName(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	rows, err := h.standings.WeekStandings(r.Context(), name, week)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetWeeklyWinners returns the winner group for every complete week
func (h *StandingsHandler) GetWeeklyWinners(w http.ResponseWriter, r *http.Request) {
	name, err := h.seasonName(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	winners, err := h.standings.SeasonWeeklyWinners(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, winners)
}

// GetTeamPerformance returns the per-team pick report for a season
func (h *StandingsHandler) GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	name, err := h.seasonName(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	report, err := h.analytics.TeamPerformance(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GetUserStats returns per-user season statistics
func (h *StandingsHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	name, err := h.seasonName(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	stats, err := h.analytics.UserStats(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// GetWelcome returns the admin-set welcome message
func (h *StandingsHandler) GetWelcome(w http.ResponseWriter, r *http.Request) {
	message, err := h.settingsStore.GetSetting(r.Context(), welcomeMessageKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}
