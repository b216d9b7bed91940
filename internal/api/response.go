package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/onchainreach/creator-hub/internal/campaigns"
	"github.com/onchainreach/creator-hub/internal/submissions"
	"github.com/onchainreach/creator-hub/internal/tracking"
	"github.com/onchainreach/creator-hub/internal/validation"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tracking.ErrInvalidInput), errors.Is(err, validation.ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, campaigns.ErrNotFound), errors.Is(err, submissions.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, submissions.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError maps err onto a status code. Internal errors are logged
// and not echoed to the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
