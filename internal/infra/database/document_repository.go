package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

type DocumentRepository struct {
	DB *sql.DB
}

func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

var ErrUnknownContact = errors.New("contact inconnu")

func (r *DocumentRepository) CreateContactDocument(ctx context.Context, d *entity.ContactDocument) error {
	query := `
		INSERT INTO contact_documents (id, contact_id, document_name, document_type, file_path, upload_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.ContactID,
		d.DocumentName,
		d.DocumentType,
		d.FilePath,
		d.UploadDate,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrUnknownContact
		}
		return err
	}
	return nil
}

func (r *DocumentRepository) ListByContactID(ctx context.Context, contactID string) ([]*entity.ContactDocument, error) {
	query := `
		SELECT id, contact_id, document_name, document_type, file_path, upload_date
		FROM contact_documents
		WHERE contact_id = $1
		ORDER BY upload_date DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*entity.ContactDocument
	for rows.Next() {
		var d entity.ContactDocument
		if err := rows.Scan(&d.ID, &d.ContactID, &d.DocumentName, &d.DocumentType, &d.FilePath, &d.UploadDate); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

func (r *DocumentRepository) CreateProjectDocument(ctx context.Context, d *entity.ProjectDocument) error {
	query := `
		INSERT INTO documents (id, project_id, file_name, file_type, file_path, signed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.ProjectID,
		d.FileName,
		d.FileType,
		d.FilePath,
		d.SignedAt,
		d.CreatedAt,
	)
	return err
}
