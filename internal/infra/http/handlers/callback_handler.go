package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/usecase"
)

type CallbackHandler struct {
	UC *usecase.CallbackUseCase
}

func NewCallbackHandler(uc *usecase.CallbackUseCase) *CallbackHandler {
	return &CallbackHandler{UC: uc}
}

func (h *CallbackHandler) List(w http.ResponseWriter, r *http.Request) {
	callbacks, err := h.UC.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if callbacks == nil {
		callbacks = []*entity.CallbackRequest{}
	}
	writeJSON(w, http.StatusOK, callbacks)
}

func (h *CallbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateCallbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON invalide: "+err.Error(), http.StatusBadRequest)
		return
	}

	cb, err := h.UC.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cb)
}

type updateCallbackInput struct {
	Status string `json:"status"`
}

// Update (PATCH /callbacks/{id}) only supports marking a request done.
func (h *CallbackHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input updateCallbackInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON invalide: "+err.Error(), http.StatusBadRequest)
		return
	}
	if input.Status != entity.CallbackCompleted {
		http.Error(w, "seul le statut completed est accepté", http.StatusBadRequest)
		return
	}

	if err := h.UC.Complete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CallbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.UC.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
