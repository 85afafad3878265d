package usecase

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
)

const maxUploadSize = 5 << 20

var allowedUploadTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// UploadDocumentUseCase stores an identity or tax document supplied by a
// lead. Type and size are checked before any byte leaves the server, so a
// refused file costs nothing.
type UploadDocumentUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	DocumentRepo entity.DocumentRepositoryInterface
	Storage      StorageInterface
	Queue        ChangePublisherInterface
	Logger       *zap.Logger
}

func NewUploadDocumentUseCase(
	leadRepo entity.LeadRepositoryInterface,
	documentRepo entity.DocumentRepositoryInterface,
	storage StorageInterface,
	queue ChangePublisherInterface,
	logger *zap.Logger,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		LeadRepo:     leadRepo,
		DocumentRepo: documentRepo,
		Storage:      storage,
		Queue:        queue,
		Logger:       logger,
	}
}

type UploadDocumentInput struct {
	LeadID      string
	DocType     string
	FileName    string
	ContentType string
	Data        []byte
}

func (uc *UploadDocumentUseCase) Execute(ctx context.Context, input UploadDocumentInput) (*entity.ContactDocument, error) {
	ext, ok := allowedUploadTypes[strings.ToLower(input.ContentType)]
	if !ok {
		return nil, &DomainError{
			Code:    "unsupported_type",
			Message: fmt.Sprintf("type de fichier refusé: %s (PDF, JPEG ou PNG attendu)", input.ContentType),
		}
	}
	if len(input.Data) == 0 {
		return nil, &DomainError{Code: "empty_file", Message: "fichier vide"}
	}
	if len(input.Data) > maxUploadSize {
		return nil, &DomainError{
			Code:    "file_too_large",
			Message: fmt.Sprintf("fichier trop volumineux: %d octets (maximum %d)", len(input.Data), maxUploadSize),
		}
	}

	if input.DocType != entity.DocTypeCNI && input.DocType != entity.DocTypeAvis {
		return nil, &DomainError{
			Code:    "unknown_doc_type",
			Message: fmt.Sprintf("type de document inconnu: %s", input.DocType),
		}
	}

	if _, err := uc.LeadRepo.FindByID(ctx, input.LeadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "lead_not_found", Message: "prospect introuvable"}
		}
		return nil, persistence("lecture du prospect", err)
	}

	if e := path.Ext(input.FileName); e != "" {
		ext = e
	}
	storagePath := fmt.Sprintf("contact-documents/%s/%d%s", input.LeadID, time.Now().UnixNano(), ext)

	if _, err := uc.Storage.Upload(ctx, storagePath, input.ContentType, input.Data); err != nil {
		return nil, fmt.Errorf("dépôt du document: %w", err)
	}

	doc := entity.NewContactDocument(input.LeadID, input.FileName, input.DocType, storagePath)

	if err := uc.DocumentRepo.CreateContactDocument(ctx, doc); err != nil {
		return nil, persistence("enregistrement du document", err)
	}

	if uc.Queue != nil {
		ev := queue.ChangeEvent{Table: "contact_documents", Event: queue.EventInsert, RecordID: doc.ID}
		if err := uc.Queue.PublishChange(ctx, ev); err != nil {
			uc.Logger.Warn("document enregistré mais événement non publié",
				zap.String("document_id", doc.ID), zap.Error(err))
		}
	}

	return doc, nil
}

func (uc *UploadDocumentUseCase) List(ctx context.Context, leadID string) ([]*entity.ContactDocument, error) {
	docs, err := uc.DocumentRepo.ListByContactID(ctx, leadID)
	if err != nil {
		return nil, persistence("liste des documents", err)
	}
	return docs, nil
}
