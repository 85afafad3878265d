package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Document types accepted by the uploader, keyed by the short codes the
// dashboard uses.
const (
	DocTypeCNI  = "cni"  // carte d'identité
	DocTypeAvis = "avis" // avis d'imposition
)

// ContactDocument is an identity or tax file uploaded for a lead and
// stored in the documents bucket.
type ContactDocument struct {
	ID           string    `json:"id"`
	ContactID    string    `json:"contact_id"`
	DocumentName string    `json:"document_name"`
	DocumentType string    `json:"document_type"`
	FilePath     string    `json:"file_path"`
	UploadDate   time.Time `json:"upload_date"`
}

func NewContactDocument(contactID, name, docType, filePath string) *ContactDocument {
	return &ContactDocument{
		ID:           uuid.New().String(),
		ContactID:    contactID,
		DocumentName: name,
		DocumentType: docType,
		FilePath:     filePath,
		UploadDate:   time.Now(),
	}
}

// ProjectDocument is a file attached to a project, in practice the
// generated signed proposal PDFs.
type ProjectDocument struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	FileName  string     `json:"file_name"`
	FileType  string     `json:"file_type"`
	FilePath  string     `json:"file_path"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewProjectDocument(projectID, fileName, fileType, filePath string) *ProjectDocument {
	return &ProjectDocument{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		FileName:  fileName,
		FileType:  fileType,
		FilePath:  filePath,
		CreatedAt: time.Now(),
	}
}

type DocumentRepositoryInterface interface {
	CreateContactDocument(ctx context.Context, d *ContactDocument) error
	ListByContactID(ctx context.Context, contactID string) ([]*ContactDocument, error)
	CreateProjectDocument(ctx context.Context, d *ProjectDocument) error
}
