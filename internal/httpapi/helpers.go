package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"course-studio/internal/course"
	"course-studio/internal/handoff"
	"course-studio/internal/wizard"
)

const sessionCookieName = "studio_session"

// wizardSession resolves the wizard session bound to the request cookie,
// creating one (and setting the cookie) on first contact or after a restart.
func (a *API) wizardSession(w http.ResponseWriter, r *http.Request) *wizard.Session {
	// A decode error just means a stale or tampered cookie; Get still
	// returns a usable blank session in that case.
	cookieSession, _ := a.cookies.Get(r, sessionCookieName)

	if sid, ok := cookieSession.Values["sid"].(string); ok {
		if session, found := a.registry.Get(sid); found {
			return session
		}
	}

	session := a.registry.Create()
	cookieSession.Values["sid"] = session.ID()
	if err := cookieSession.Save(r, w); err != nil {
		a.log.Warn("failed to persist session cookie", "error", err)
	}
	return session
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, course.ErrQuestionTextRequired),
		errors.Is(err, course.ErrTooFewOptions),
		errors.Is(err, course.ErrNoCorrectOption),
		errors.Is(err, wizard.ErrNameRequired),
		errors.Is(err, wizard.ErrCourseInfoIncomplete):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, wizard.ErrInvalidModalState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, wizard.ErrSessionClosed):
		writeJSON(w, http.StatusGone, errorResponse{Error: err.Error()})
	case errors.Is(err, handoff.ErrDocumentUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "handoff document unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
