package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"time"

	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
	"github.com/fhhabitat/renov-admin/internal/pdf"
	"github.com/fhhabitat/renov-admin/internal/signature"
)

// SignProposalUseCase turns a filled proposal form plus a signature into a
// stored proposal: it composes the PDF, uploads both artefacts, records the
// proposal against the lead's project and alerts the office.
type SignProposalUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ProjectRepo  entity.ProjectRepositoryInterface
	ProposalRepo entity.ProposalRepositoryInterface
	DocumentRepo entity.DocumentRepositoryInterface
	Composer     ComposerInterface
	Storage      StorageInterface
	Queue        ChangePublisherInterface
	EmailService EmailService
	Logger       *zap.Logger
}

func NewSignProposalUseCase(
	leadRepo entity.LeadRepositoryInterface,
	projectRepo entity.ProjectRepositoryInterface,
	proposalRepo entity.ProposalRepositoryInterface,
	documentRepo entity.DocumentRepositoryInterface,
	composer ComposerInterface,
	storage StorageInterface,
	queue ChangePublisherInterface,
	emailService EmailService,
	logger *zap.Logger,
) *SignProposalUseCase {
	return &SignProposalUseCase{
		LeadRepo:     leadRepo,
		ProjectRepo:  projectRepo,
		ProposalRepo: proposalRepo,
		DocumentRepo: documentRepo,
		Composer:     composer,
		Storage:      storage,
		Queue:        queue,
		EmailService: emailService,
		Logger:       logger,
	}
}

type SignProposalInput struct {
	LeadID string
	Fields map[string]string

	// Exactly one of the two carries the signature: raw PNG bytes from the
	// tablet, or the recorded strokes to replay server side.
	SignaturePNG []byte
	Strokes      []signature.Stroke
}

type SignProposalOutput struct {
	ProposalID string `json:"proposal_id"`
	PDFURL     string `json:"pdf_url"`
}

func (uc *SignProposalUseCase) Execute(ctx context.Context, input SignProposalInput) (*SignProposalOutput, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "lead_not_found", Message: "prospect introuvable"}
		}
		return nil, persistence("lecture du prospect", err)
	}

	sigPNG, err := uc.signaturePNG(input)
	if err != nil {
		return nil, err
	}

	data := BuildPropositionData(lead, input.Fields)

	document, err := uc.Composer.Compose(data, sigPNG)
	if err != nil {
		return nil, fmt.Errorf("composition du PDF: %w", err)
	}

	now := time.Now()
	pdfPath := fmt.Sprintf("documents/%s/%s", lead.ID, pdf.FileName(lead.Name, now))
	pdfURL, err := uc.Storage.Upload(ctx, pdfPath, "application/pdf", document)
	if err != nil {
		return nil, fmt.Errorf("dépôt du PDF: %w", err)
	}

	sigPath := fmt.Sprintf("signatures/%s/%d.png", lead.ID, now.Unix())
	sigURL, err := uc.Storage.Upload(ctx, sigPath, "image/png", sigPNG)
	if err != nil {
		return nil, fmt.Errorf("dépôt de la signature: %w", err)
	}

	projectID, err := uc.ProjectRepo.Ensure(ctx, lead.ID)
	if err != nil {
		return nil, persistence("résolution du projet", err)
	}

	proposal := entity.NewProposal(projectID, data)
	proposal.SignatureURL = sigURL
	proposal.SignedDocumentURL = pdfURL
	if err := uc.ProposalRepo.Create(ctx, proposal); err != nil {
		return nil, persistence("enregistrement de la proposition", err)
	}

	doc := entity.NewProjectDocument(projectID, pdf.FileName(lead.Name, now), "application/pdf", pdfPath)
	doc.SignedAt = &proposal.SignedAt
	if err := uc.DocumentRepo.CreateProjectDocument(ctx, doc); err != nil {
		uc.Logger.Warn("proposition enregistrée mais document non tracé",
			zap.String("proposal_id", proposal.ID), zap.Error(err))
	}

	if uc.Queue != nil {
		ev := queue.ChangeEvent{Table: "proposals", Event: queue.EventInsert, RecordID: proposal.ID}
		if err := uc.Queue.PublishChange(ctx, ev); err != nil {
			uc.Logger.Warn("proposition enregistrée mais événement non publié",
				zap.String("proposal_id", proposal.ID), zap.Error(err))
		}
	}

	if uc.EmailService != nil {
		if err := uc.EmailService.SendProposalSigned(lead.Name, pdfURL); err != nil {
			uc.Logger.Warn("notification de signature non envoyée", zap.Error(err))
		}
	}

	return &SignProposalOutput{ProposalID: proposal.ID, PDFURL: pdfURL}, nil
}

func (uc *SignProposalUseCase) signaturePNG(input SignProposalInput) ([]byte, error) {
	if len(input.Strokes) > 0 {
		pad := signature.NewDefaultPad()
		pad.Replay(input.Strokes)
		raster, err := pad.Complete()
		if err != nil {
			if errors.Is(err, signature.ErrEmptySignature) {
				return nil, &DomainError{Code: "empty_signature", Message: "la signature est obligatoire"}
			}
			return nil, err
		}
		return raster, nil
	}

	if len(input.SignaturePNG) == 0 {
		return nil, &DomainError{Code: "empty_signature", Message: "la signature est obligatoire"}
	}
	if _, err := png.Decode(bytes.NewReader(input.SignaturePNG)); err != nil {
		return nil, &DomainError{Code: "invalid_signature", Message: "signature illisible, PNG attendu"}
	}
	return input.SignaturePNG, nil
}
