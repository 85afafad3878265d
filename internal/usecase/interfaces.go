package usecase

import (
	"context"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
)

type StorageInterface interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	// Download accepts a URL produced by Upload and returns the object.
	Download(ctx context.Context, url string) ([]byte, error)
}

type ChangePublisherInterface interface {
	PublishChange(ctx context.Context, ev queue.ChangeEvent) error
}

type EmailService interface {
	SendCallbackAlert(name, phone string) error
	SendProposalSigned(clientName, pdfURL string) error
}

type ComposerInterface interface {
	Compose(data entity.PropositionData, signaturePNG []byte) ([]byte, error)
}
