package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CallbackPending   = "pending"
	CallbackCompleted = "completed"
)

var ErrCallbackNotFound = errors.New("demande de rappel introuvable")

// CallbackRequest is a "rappelez-moi" request left by a visitor.
type CallbackRequest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCallbackRequest(name, phone string) (*CallbackRequest, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if phone == "" {
		return nil, errors.New("phone is required")
	}
	return &CallbackRequest{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    CallbackPending,
		CreatedAt: time.Now(),
	}, nil
}

type CallbackRepositoryInterface interface {
	List(ctx context.Context) ([]*CallbackRequest, error)
	Create(ctx context.Context, cb *CallbackRequest) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
