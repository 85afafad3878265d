package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhhabitat/renov-admin/internal/infra/http/middleware"
	"github.com/fhhabitat/renov-admin/internal/usecase"
)

type LeadHandler struct {
	ListUC   *usecase.ListLeadsUseCase
	StatusUC *usecase.UpdateStatusUseCase
}

func NewLeadHandler(listUC *usecase.ListLeadsUseCase, statusUC *usecase.UpdateStatusUseCase) *LeadHandler {
	return &LeadHandler{ListUC: listUC, StatusUC: statusUC}
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")
	if leadID == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return
	}

	lead, err := h.ListUC.ExecuteOne(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// UpdateStatus (PATCH /leads/{id}/status)
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input usecase.UpdateStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON invalide: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.StatusUC.Execute(r.Context(), leadID, input); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordStatusUpdate(input.Category)
	w.WriteHeader(http.StatusNoContent)
}

type updateCommentInput struct {
	Comment string `json:"comment"`
}

// UpdateComment (PATCH /leads/{id}/comment)
func (h *LeadHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input updateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON invalide: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.StatusUC.ExecuteComment(r.Context(), leadID, input.Comment); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
