package entity

import (
	"context"
	"errors"
	"time"
)

var ErrLeadNotFound = errors.New("lead introuvable")

// Lead is an eligibility submission captured by the public intake form.
// Rows are created by the form, never by this service, so the repository
// is read-only on purpose.
type Lead struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	PostalCode       string    `json:"postal_code"`
	PropertyType     string    `json:"property_type"`
	ConstructionYear string    `json:"construction_year"`
	Occupants        string    `json:"occupants"`
	OccupancyStatus  *string   `json:"occupancy_status,omitempty"`
	IncomeRange      *string   `json:"income_range,omitempty"`
	PlannedWorks     []string  `json:"planned_works,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type LeadRepositoryInterface interface {
	// List returns every submission, newest first.
	List(ctx context.Context) ([]*Lead, error)
	// FindByID returns ErrLeadNotFound when no row matches.
	FindByID(ctx context.Context, id string) (*Lead, error)
}
