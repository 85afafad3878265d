package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

var errUnknownProjectField = errors.New("champ de projet inconnu")

func (r *ProjectRepository) FindByLeadID(ctx context.Context, leadID string) (*entity.Project, error) {
	query := `
		SELECT id, eligibility_submission_id, contact_status, appointment_status,
		       work_status, payment_status, contact_comment, created_at, updated_at
		FROM projects
		WHERE eligibility_submission_id = $1
	`

	var p entity.Project
	err := r.DB.QueryRowContext(ctx, query, leadID).Scan(
		&p.ID,
		&p.EligibilitySubmissionID,
		&p.ContactStatus,
		&p.AppointmentStatus,
		&p.WorkStatus,
		&p.PaymentStatus,
		&p.ContactComment,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// ApplyField creates the project on first write and updates the single
// column on later ones, in one statement. Two dashboards racing on a fresh
// lead both land on the same row.
func (r *ProjectRepository) ApplyField(ctx context.Context, leadID string, field entity.ProjectField, value string) (string, bool, error) {
	if !field.Valid() {
		return "", false, fmt.Errorf("%w: %s", errUnknownProjectField, field)
	}

	// field comes from the closed ProjectField set, never from user input.
	// xmax = 0 only on a freshly inserted row, which tells insert from update.
	query := fmt.Sprintf(`
		INSERT INTO projects (id, eligibility_submission_id, %[1]s, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		ON CONFLICT (eligibility_submission_id)
		DO UPDATE SET %[1]s = EXCLUDED.%[1]s, updated_at = NOW()
		RETURNING id, (xmax = 0)
	`, field)

	var projectID string
	var created bool
	if err := r.DB.QueryRowContext(ctx, query, leadID, value).Scan(&projectID, &created); err != nil {
		return "", false, err
	}
	return projectID, created, nil
}

// Ensure returns the project id for a lead, inserting an empty row when
// none exists. The no-op DO UPDATE keeps RETURNING populated on conflict.
func (r *ProjectRepository) Ensure(ctx context.Context, leadID string) (string, error) {
	query := `
		INSERT INTO projects (id, eligibility_submission_id, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, NOW(), NOW())
		ON CONFLICT (eligibility_submission_id)
		DO UPDATE SET eligibility_submission_id = EXCLUDED.eligibility_submission_id
		RETURNING id
	`

	var projectID string
	if err := r.DB.QueryRowContext(ctx, query, leadID).Scan(&projectID); err != nil {
		return "", err
	}
	return projectID, nil
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, field entity.ProjectField, value string) (int, error) {
	if !field.Valid() {
		return 0, fmt.Errorf("%w: %s", errUnknownProjectField, field)
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM projects WHERE %s = $1`, field)

	var count int
	if err := r.DB.QueryRowContext(ctx, query, value).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
