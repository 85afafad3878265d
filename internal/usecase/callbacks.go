package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
)

// CallbackUseCase manages the "rappelez-moi" requests left on the public
// site. Creation also feeds the change queue, where a worker mails the
// office so nobody waits on a dashboard refresh.
type CallbackUseCase struct {
	Repo   entity.CallbackRepositoryInterface
	Queue  ChangePublisherInterface
	Logger *zap.Logger
}

func NewCallbackUseCase(repo entity.CallbackRepositoryInterface, queue ChangePublisherInterface, logger *zap.Logger) *CallbackUseCase {
	return &CallbackUseCase{Repo: repo, Queue: queue, Logger: logger}
}

type CreateCallbackInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (uc *CallbackUseCase) List(ctx context.Context) ([]*entity.CallbackRequest, error) {
	callbacks, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, persistence("liste des demandes de rappel", err)
	}
	return callbacks, nil
}

func (uc *CallbackUseCase) Create(ctx context.Context, input CreateCallbackInput) (*entity.CallbackRequest, error) {
	cb, err := entity.NewCallbackRequest(input.Name, input.Phone)
	if err != nil {
		return nil, &DomainError{Code: "invalid_callback", Message: err.Error()}
	}

	if err := uc.Repo.Create(ctx, cb); err != nil {
		return nil, persistence("enregistrement de la demande de rappel", err)
	}

	uc.publish(ctx, queue.EventInsert, cb.ID)
	return cb, nil
}

func (uc *CallbackUseCase) Complete(ctx context.Context, id string) error {
	if err := uc.Repo.UpdateStatus(ctx, id, entity.CallbackCompleted); err != nil {
		if errors.Is(err, entity.ErrCallbackNotFound) {
			return &DomainError{Code: "callback_not_found", Message: "demande de rappel introuvable"}
		}
		return persistence("clôture de la demande de rappel", err)
	}

	uc.publish(ctx, queue.EventUpdate, id)
	return nil
}

func (uc *CallbackUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrCallbackNotFound) {
			return &DomainError{Code: "callback_not_found", Message: "demande de rappel introuvable"}
		}
		return persistence("suppression de la demande de rappel", err)
	}

	uc.publish(ctx, queue.EventDelete, id)
	return nil
}

func (uc *CallbackUseCase) publish(ctx context.Context, event, id string) {
	if uc.Queue == nil {
		return
	}
	ev := queue.ChangeEvent{Table: "callback_requests", Event: event, RecordID: id}
	if err := uc.Queue.PublishChange(ctx, ev); err != nil {
		uc.Logger.Warn("demande de rappel enregistrée mais événement non publié",
			zap.String("callback_id", id), zap.Error(err))
	}
}
