package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fhhabitat/renov-admin/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain failures onto 4xx responses and hides everything
// else behind a plain 500.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForCode(domainErr.Code), errorResponse{
			Error: domainErr.Message,
			Code:  domainErr.Code,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "erreur interne"})
}

func statusForCode(code string) int {
	switch code {
	case "lead_not_found", "proposal_not_found", "callback_not_found":
		return http.StatusNotFound
	case "file_too_large":
		return http.StatusRequestEntityTooLarge
	case "unsupported_type":
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
