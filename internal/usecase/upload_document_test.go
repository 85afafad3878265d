package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

func TestUploadDocumentStoresAndRecords(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	docRepo := new(MockDocumentRepository)
	storage := new(MockStorage)
	publisher := new(MockChangePublisher)

	leadRepo.On("FindByID", ctx, "lead-1").Return(testLead("lead-1"), nil)
	storage.On("Upload", ctx, mock.Anything, "application/pdf", mock.Anything).
		Return("https://storage.example.com/contact-documents/lead-1/x.pdf", nil)
	docRepo.On("CreateContactDocument", ctx, mock.Anything).Return(nil)
	publisher.On("PublishChange", ctx, mock.Anything).Return(nil)

	uc := NewUploadDocumentUseCase(leadRepo, docRepo, storage, publisher, zap.NewNop())

	doc, err := uc.Execute(ctx, UploadDocumentInput{
		LeadID:      "lead-1",
		DocType:     entity.DocTypeAvis,
		FileName:    "avis-2025.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 contenu"),
	})

	require.NoError(t, err)
	assert.Equal(t, "lead-1", doc.ContactID)
	assert.Equal(t, entity.DocTypeAvis, doc.DocumentType)
	assert.True(t, strings.HasPrefix(doc.FilePath, "contact-documents/lead-1/"))
	assert.True(t, strings.HasSuffix(doc.FilePath, ".pdf"))

	storage.AssertCalled(t, "Upload", ctx, mock.Anything, "application/pdf", mock.Anything)
	docRepo.AssertCalled(t, "CreateContactDocument", ctx, mock.Anything)
}

func TestUploadDocumentRejectsBeforeAnyNetworkCall(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	storage := new(MockStorage)

	uc := NewUploadDocumentUseCase(leadRepo, new(MockDocumentRepository), storage, nil, zap.NewNop())

	cases := []struct {
		name  string
		input UploadDocumentInput
	}{
		{
			name: "type refusé",
			input: UploadDocumentInput{
				LeadID: "lead-1", DocType: entity.DocTypeCNI,
				FileName: "scan.gif", ContentType: "image/gif", Data: []byte("GIF89a"),
			},
		},
		{
			name: "fichier vide",
			input: UploadDocumentInput{
				LeadID: "lead-1", DocType: entity.DocTypeCNI,
				FileName: "cni.png", ContentType: "image/png",
			},
		},
		{
			name: "trop volumineux",
			input: UploadDocumentInput{
				LeadID: "lead-1", DocType: entity.DocTypeCNI,
				FileName: "cni.png", ContentType: "image/png",
				Data: bytes.Repeat([]byte("a"), maxUploadSize+1),
			},
		},
		{
			name: "type de document inconnu",
			input: UploadDocumentInput{
				LeadID: "lead-1", DocType: "passeport",
				FileName: "p.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := uc.Execute(ctx, tc.input)
			assert.Nil(t, doc)
			assert.True(t, IsDomainError(err))
		})
	}

	leadRepo.AssertNotCalled(t, "FindByID")
	storage.AssertNotCalled(t, "Upload")
}

func TestUploadDocumentLeadNotFound(t *testing.T) {
	ctx := context.Background()

	leadRepo := new(MockLeadRepository)
	storage := new(MockStorage)
	leadRepo.On("FindByID", ctx, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := NewUploadDocumentUseCase(leadRepo, new(MockDocumentRepository), storage, nil, zap.NewNop())

	doc, err := uc.Execute(ctx, UploadDocumentInput{
		LeadID: "ghost", DocType: entity.DocTypeCNI,
		FileName: "cni.jpg", ContentType: "image/jpeg", Data: []byte("fake"),
	})

	assert.Nil(t, doc)
	assert.True(t, IsDomainError(err))
	storage.AssertNotCalled(t, "Upload")
}
