package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"pickem-app-go/services"

	"github.com/gorilla/mux"
)

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinel errors onto HTTP statuses.
// Unknown errors become 500s with a generic body so internals never leak.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrPickMissing),
		errors.Is(err, services.ErrPickUnknownGame),
		errors.Is(err, services.ErrConfidenceCount),
		errors.Is(err, services.ErrConfidenceWeights),
		errors.Is(err, services.ErrConfidenceDupGame),
		errors.Is(err, services.ErrConfidenceUnpicked),
		errors.Is(err, services.ErrWrongGameCount),
		errors.Is(err, services.ErrUnknownGame),
		errors.Is(err, services.ErrWinnerNotInGame),
		errors.Is(err, services.ErrBadWeekNumber),
		errors.Is(err, services.ErrMissingFields):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotEnrolled),
		errors.Is(err, services.ErrNotApproved),
		errors.Is(err, services.ErrPicksHidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNoActiveSeason),
		errors.Is(err, services.ErrWeekNotReady),
		errors.Is(err, services.ErrSeasonNotFound),
		errors.Is(err, services.ErrPendingNotFound),
		errors.Is(err, services.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrSeasonLocked),
		errors.Is(err, services.ErrAlreadySubmitted),
		errors.Is(err, services.ErrWeekScored),
		errors.Is(err, services.ErrVersionConflict),
		errors.Is(err, services.ErrSeasonExists),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrAlreadyRegistered):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON parses a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// weekParam extracts the {week} route variable
func weekParam(r *http.Request) (int, error) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil {
		return 0, errors.New("week must be a number")
	}
	return week, nil
}
