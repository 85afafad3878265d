package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/pdf"
)

// ProposalQueryUseCase serves the read side of proposals: listing what a
// lead has signed and handing back the archived PDF.
type ProposalQueryUseCase struct {
	ProjectRepo  entity.ProjectRepositoryInterface
	ProposalRepo entity.ProposalRepositoryInterface
	Storage      StorageInterface
}

func NewProposalQueryUseCase(
	projectRepo entity.ProjectRepositoryInterface,
	proposalRepo entity.ProposalRepositoryInterface,
	storage StorageInterface,
) *ProposalQueryUseCase {
	return &ProposalQueryUseCase{ProjectRepo: projectRepo, ProposalRepo: proposalRepo, Storage: storage}
}

// ListByLead returns the lead's proposals, newest first. A lead without a
// project has signed nothing, so the list is empty rather than an error.
func (uc *ProposalQueryUseCase) ListByLead(ctx context.Context, leadID string) ([]*entity.Proposal, error) {
	project, err := uc.ProjectRepo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, persistence("lecture du projet", err)
	}
	if project == nil {
		return []*entity.Proposal{}, nil
	}

	proposals, err := uc.ProposalRepo.ListByProjectID(ctx, project.ID)
	if err != nil {
		return nil, persistence("liste des propositions", err)
	}
	return proposals, nil
}

type ProposalPDFOutput struct {
	FileName string
	Content  []byte
}

func (uc *ProposalQueryUseCase) DownloadPDF(ctx context.Context, proposalID string) (*ProposalPDFOutput, error) {
	proposal, err := uc.ProposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, entity.ErrProposalNotFound) {
			return nil, &DomainError{Code: "proposal_not_found", Message: "proposition introuvable"}
		}
		return nil, persistence("lecture de la proposition", err)
	}

	content, err := uc.Storage.Download(ctx, proposal.SignedDocumentURL)
	if err != nil {
		return nil, fmt.Errorf("récupération du PDF: %w", err)
	}

	return &ProposalPDFOutput{
		FileName: pdf.FileName(proposal.Data.Client.Nom, proposal.SignedAt),
		Content:  content,
	}, nil
}
