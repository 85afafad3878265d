package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

// LeadRepository reads the eligibility_submissions table. The simulator on
// the public site owns the writes; the dashboard never touches them.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, email, phone, postal_code, property_type,
	construction_year, occupants, occupancy_status, income_range,
	planned_works, created_at
`

func (r *LeadRepository) List(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM eligibility_submissions
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM eligibility_submissions
		WHERE id = $1
	`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.PostalCode,
		&lead.PropertyType,
		&lead.ConstructionYear,
		&lead.Occupants,
		&lead.OccupancyStatus,
		&lead.IncomeRange,
		pq.Array(&lead.PlannedWorks),
		&lead.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
