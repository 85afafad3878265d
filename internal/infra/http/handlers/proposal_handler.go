package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhhabitat/renov-admin/internal/infra/http/middleware"
	"github.com/fhhabitat/renov-admin/internal/signature"
	"github.com/fhhabitat/renov-admin/internal/usecase"
)

type ProposalHandler struct {
	SignUC  *usecase.SignProposalUseCase
	QueryUC *usecase.ProposalQueryUseCase
}

func NewProposalHandler(signUC *usecase.SignProposalUseCase, queryUC *usecase.ProposalQueryUseCase) *ProposalHandler {
	return &ProposalHandler{SignUC: signUC, QueryUC: queryUC}
}

type signatureInput struct {
	// PNG is the raster, base64 encoded. Strokes is the raw trace; when
	// both are present the strokes win since the server rebuilds the
	// raster deterministically.
	PNG     string             `json:"png,omitempty"`
	Strokes []signature.Stroke `json:"strokes,omitempty"`
}

type createProposalInput struct {
	LeadID    string            `json:"lead_id"`
	Fields    map[string]string `json:"fields"`
	Signature signatureInput    `json:"signature"`
}

// Create (POST /propositions)
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createProposalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON invalide: "+err.Error(), http.StatusBadRequest)
		return
	}

	ucInput := usecase.SignProposalInput{
		LeadID:  input.LeadID,
		Fields:  input.Fields,
		Strokes: input.Signature.Strokes,
	}
	if len(input.Signature.Strokes) == 0 && input.Signature.PNG != "" {
		raw, err := base64.StdEncoding.DecodeString(input.Signature.PNG)
		if err != nil {
			http.Error(w, "signature base64 invalide", http.StatusBadRequest)
			return
		}
		ucInput.SignaturePNG = raw
	}

	output, err := h.SignUC.Execute(r.Context(), ucInput)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordProposalSigned()
	writeJSON(w, http.StatusCreated, output)
}

// List (GET /propositions?lead_id=...)
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	leadID := r.URL.Query().Get("lead_id")
	if leadID == "" {
		http.Error(w, "lead_id is required", http.StatusBadRequest)
		return
	}

	proposals, err := h.QueryUC.ListByLead(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proposals)
}

// DownloadPDF (GET /propositions/{id}/pdf)
func (h *ProposalHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	proposalID := chi.URLParam(r, "id")

	out, err := h.QueryUC.DownloadPDF(r.Context(), proposalID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Content)
}
