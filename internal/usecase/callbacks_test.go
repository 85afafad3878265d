package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
)

func TestCallbackCreatePublishesInsert(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCallbackRepository)
	publisher := new(MockChangePublisher)

	repo.On("Create", ctx, mock.Anything).Return(nil)
	publisher.On("PublishChange", ctx, mock.Anything).Return(nil)

	uc := NewCallbackUseCase(repo, publisher, zap.NewNop())

	cb, err := uc.Create(ctx, CreateCallbackInput{Name: "Jean Martin", Phone: "07 11 22 33 44"})

	require.NoError(t, err)
	assert.Equal(t, entity.CallbackPending, cb.Status)
	publisher.AssertCalled(t, "PublishChange", ctx, mock.MatchedBy(func(ev queue.ChangeEvent) bool {
		return ev.Table == "callback_requests" && ev.Event == queue.EventInsert && ev.RecordID == cb.ID
	}))
}

func TestCallbackCreateRejectsMissingFields(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCallbackRepository)
	uc := NewCallbackUseCase(repo, nil, zap.NewNop())

	cb, err := uc.Create(ctx, CreateCallbackInput{Name: "", Phone: "07 11 22 33 44"})
	assert.Nil(t, cb)
	assert.True(t, IsDomainError(err))

	cb, err = uc.Create(ctx, CreateCallbackInput{Name: "Jean", Phone: ""})
	assert.Nil(t, cb)
	assert.True(t, IsDomainError(err))

	repo.AssertNotCalled(t, "Create")
}

func TestCallbackComplete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCallbackRepository)
	publisher := new(MockChangePublisher)

	repo.On("UpdateStatus", ctx, "cb-1", entity.CallbackCompleted).Return(nil)
	publisher.On("PublishChange", ctx, mock.Anything).Return(nil)

	uc := NewCallbackUseCase(repo, publisher, zap.NewNop())

	assert.NoError(t, uc.Complete(ctx, "cb-1"))
	repo.AssertCalled(t, "UpdateStatus", ctx, "cb-1", entity.CallbackCompleted)
}

func TestCallbackCompleteNotFound(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCallbackRepository)
	repo.On("UpdateStatus", ctx, "ghost", entity.CallbackCompleted).Return(entity.ErrCallbackNotFound)

	uc := NewCallbackUseCase(repo, nil, zap.NewNop())

	err := uc.Complete(ctx, "ghost")
	assert.True(t, IsDomainError(err))
}

func TestCallbackDeletePublishesDelete(t *testing.T) {
	ctx := context.Background()

	repo := new(MockCallbackRepository)
	publisher := new(MockChangePublisher)

	repo.On("Delete", ctx, "cb-1").Return(nil)
	publisher.On("PublishChange", ctx, mock.Anything).Return(nil)

	uc := NewCallbackUseCase(repo, publisher, zap.NewNop())

	assert.NoError(t, uc.Delete(ctx, "cb-1"))
	publisher.AssertCalled(t, "PublishChange", ctx, mock.MatchedBy(func(ev queue.ChangeEvent) bool {
		return ev.Event == queue.EventDelete
	}))
}
