package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fhhabitat/renov-admin/internal/infra/http/middleware"
	"github.com/fhhabitat/renov-admin/internal/usecase"
)

type DocumentHandler struct {
	UploadUC *usecase.UploadDocumentUseCase
}

func NewDocumentHandler(uploadUC *usecase.UploadDocumentUseCase) *DocumentHandler {
	return &DocumentHandler{UploadUC: uploadUC}
}

// The multipart reader caps slightly above the business limit so an
// oversized file reaches the use case and gets its proper error.
const multipartMemory = 6 << 20

// Upload (POST /leads/{id}/documents)
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		http.Error(w, "formulaire multipart invalide: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "champ file manquant", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, multipartMemory))
	if err != nil {
		http.Error(w, "lecture du fichier impossible", http.StatusBadRequest)
		return
	}

	input := usecase.UploadDocumentInput{
		LeadID:      leadID,
		DocType:     r.FormValue("doc_type"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	doc, err := h.UploadUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDocumentUpload(input.DocType)
	writeJSON(w, http.StatusCreated, doc)
}

// List (GET /leads/{id}/documents)
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	docs, err := h.UploadUC.List(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}
