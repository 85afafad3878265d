package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

// MockProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Project, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *MockProjectRepository) ApplyField(ctx context.Context, leadID string, field entity.ProjectField, value string) (string, bool, error) {
	args := m.Called(ctx, leadID, field, value)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockProjectRepository) Ensure(ctx context.Context, leadID string) (string, error) {
	args := m.Called(ctx, leadID)
	return args.String(0), args.Error(1)
}

func (m *MockProjectRepository) CountByStatus(ctx context.Context, field entity.ProjectField, value string) (int, error) {
	args := m.Called(ctx, field, value)
	return args.Int(0), args.Error(1)
}

// MockProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, p *entity.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id string) (*entity.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ListByProjectID(ctx context.Context, projectID string) ([]*entity.Proposal, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Proposal), args.Error(1)
}

// MockDocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateContactDocument(ctx context.Context, d *entity.ContactDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListByContactID(ctx context.Context, contactID string) ([]*entity.ContactDocument, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ContactDocument), args.Error(1)
}

func (m *MockDocumentRepository) CreateProjectDocument(ctx context.Context, d *entity.ProjectDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockCallbackRepository
type MockCallbackRepository struct {
	mock.Mock
}

func (m *MockCallbackRepository) List(ctx context.Context) ([]*entity.CallbackRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CallbackRequest), args.Error(1)
}

func (m *MockCallbackRepository) Create(ctx context.Context, cb *entity.CallbackRequest) error {
	args := m.Called(ctx, cb)
	return args.Error(0)
}

func (m *MockCallbackRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCallbackRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, path, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Download(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockChangePublisher
type MockChangePublisher struct {
	mock.Mock
}

func (m *MockChangePublisher) PublishChange(ctx context.Context, ev queue.ChangeEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendCallbackAlert(name, phone string) error {
	args := m.Called(name, phone)
	return args.Error(0)
}

func (m *MockEmailService) SendProposalSigned(clientName, pdfURL string) error {
	args := m.Called(clientName, pdfURL)
	return args.Error(0)
}

// MockComposer
type MockComposer struct {
	mock.Mock
}

func (m *MockComposer) Compose(data entity.PropositionData, signaturePNG []byte) ([]byte, error) {
	args := m.Called(data, signaturePNG)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
