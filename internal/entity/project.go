package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PhaseStatus is the stored outcome of the contact and appointment phases.
type PhaseStatus string

const (
	PhaseSuccess PhaseStatus = "success"
	PhaseFailure PhaseStatus = "failure"
	PhasePending PhaseStatus = "pending"
)

// WorkStatus is the stored progress of the renovation works.
type WorkStatus string

const (
	WorkNotStarted WorkStatus = "not_started"
	WorkInProgress WorkStatus = "in_progress"
	WorkCompleted  WorkStatus = "completed"
)

// PaymentStatus is the stored state of the client payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRejected PaymentStatus = "rejected"
)

// ProjectField names a single mutable column of a project row. The
// resolver only ever touches one field per call, so updates from two
// dropdowns never clobber each other.
type ProjectField string

const (
	FieldContactStatus     ProjectField = "contact_status"
	FieldAppointmentStatus ProjectField = "appointment_status"
	FieldWorkStatus        ProjectField = "work_status"
	FieldPaymentStatus     ProjectField = "payment_status"
	FieldContactComment    ProjectField = "contact_comment"
)

// Valid reports whether the field names a known project column. The
// repository builds SQL from field names and must never interpolate
// anything else.
func (f ProjectField) Valid() bool {
	switch f {
	case FieldContactStatus, FieldAppointmentStatus, FieldWorkStatus,
		FieldPaymentStatus, FieldContactComment:
		return true
	}
	return false
}

// Project is the workflow record attached to a lead: at most one per
// eligibility submission, created lazily on the first status or comment
// change and never deleted.
type Project struct {
	ID                      string    `json:"id"`
	EligibilitySubmissionID string    `json:"eligibility_submission_id"`
	ContactStatus           *string   `json:"contact_status,omitempty"`
	AppointmentStatus       *string   `json:"appointment_status,omitempty"`
	WorkStatus              *string   `json:"work_status,omitempty"`
	PaymentStatus           *string   `json:"payment_status,omitempty"`
	ContactComment          *string   `json:"contact_comment,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func NewProject(leadID string) *Project {
	return &Project{
		ID:                      uuid.New().String(),
		EligibilitySubmissionID: leadID,
		CreatedAt:               time.Now(),
		UpdatedAt:               time.Now(),
	}
}

type ProjectRepositoryInterface interface {
	// FindByLeadID returns nil, nil when the lead has no project yet.
	FindByLeadID(ctx context.Context, leadID string) (*Project, error)
	// ApplyField writes a single field through an atomic upsert keyed on
	// the lead id. It returns the project id and whether the row was
	// created by this call rather than updated.
	ApplyField(ctx context.Context, leadID string, field ProjectField, value string) (string, bool, error)
	// Ensure returns the lead's project id, creating an empty project row
	// when none exists yet.
	Ensure(ctx context.Context, leadID string) (string, error)
	// CountByStatus counts projects whose column holds the given value.
	CountByStatus(ctx context.Context, field ProjectField, value string) (int, error)
}
