package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
	"github.com/fhhabitat/renov-admin/internal/status"
)

// UpdateStatusUseCase translates a dashboard status change into a project
// row mutation. Projects are created lazily: the first change for a lead
// inserts its project, later changes update it in place.
type UpdateStatusUseCase struct {
	LeadRepo    entity.LeadRepositoryInterface
	ProjectRepo entity.ProjectRepositoryInterface
	Queue       ChangePublisherInterface
	Logger      *zap.Logger
}

func NewUpdateStatusUseCase(
	leadRepo entity.LeadRepositoryInterface,
	projectRepo entity.ProjectRepositoryInterface,
	queue ChangePublisherInterface,
	logger *zap.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		LeadRepo:    leadRepo,
		ProjectRepo: projectRepo,
		Queue:       queue,
		Logger:      logger,
	}
}

type UpdateStatusInput struct {
	Category string `json:"category"`
	Value    string `json:"value"`
}

// Execute maps the dashboard value to its backend form and applies it to
// the lead's project. Unknown values are rejected before any write.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, leadID string, input UpdateStatusInput) error {
	category := status.Category(input.Category)

	backend, err := status.ToBackend(category, input.Value)
	if err != nil {
		var unknown *status.UnknownValueError
		if errors.As(err, &unknown) {
			return &DomainError{Code: "invalid_status", Message: unknown.Error()}
		}
		return err
	}

	return uc.applyField(ctx, leadID, status.Field(category), backend)
}

// ExecuteComment stores the free-text contact note on the lead's project.
func (uc *UpdateStatusUseCase) ExecuteComment(ctx context.Context, leadID, comment string) error {
	return uc.applyField(ctx, leadID, entity.FieldContactComment, comment)
}

func (uc *UpdateStatusUseCase) applyField(ctx context.Context, leadID string, field entity.ProjectField, value string) error {
	if _, err := uc.LeadRepo.FindByID(ctx, leadID); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return &DomainError{Code: "lead_not_found", Message: "prospect introuvable"}
		}
		return persistence("lecture du prospect", err)
	}

	projectID, created, err := uc.ProjectRepo.ApplyField(ctx, leadID, field, value)
	if err != nil {
		return persistence("mise à jour du projet", err)
	}

	event := queue.EventUpdate
	if created {
		event = queue.EventInsert
	}

	if uc.Queue != nil {
		ev := queue.ChangeEvent{Table: "projects", Event: event, RecordID: projectID, LeadID: leadID}
		if err := uc.Queue.PublishChange(ctx, ev); err != nil {
			uc.Logger.Warn("projet enregistré mais événement non publié",
				zap.String("project_id", projectID), zap.Error(err))
		}
	}
	return nil
}
