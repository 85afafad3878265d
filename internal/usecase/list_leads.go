package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fhhabitat/renov-admin/internal/entity"
	"github.com/fhhabitat/renov-admin/internal/status"
)

// LeadOutput is a lead as the dashboard sees it: intake answers plus the
// workflow statuses already translated back to the dropdown vocabulary.
type LeadOutput struct {
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
	PlannedWorks     []string  `json:"planned_works"`
	SubmittedAt      time.Time `json:"submitted_at"`

	ContactStatus     string `json:"contact_status"`
	AppointmentStatus string `json:"appointment_status"`
	WorkStatus        string `json:"work_status"`
	PaymentStatus     string `json:"payment_status"`
	ContactComment    string `json:"contact_comment"`
}

type ListLeadsUseCase struct {
	LeadRepo    entity.LeadRepositoryInterface
	ProjectRepo entity.ProjectRepositoryInterface
}

func NewListLeadsUseCase(leadRepo entity.LeadRepositoryInterface, projectRepo entity.ProjectRepositoryInterface) *ListLeadsUseCase {
	return &ListLeadsUseCase{LeadRepo: leadRepo, ProjectRepo: projectRepo}
}

func (uc *ListLeadsUseCase) Execute(ctx context.Context) ([]LeadOutput, error) {
	leads, err := uc.LeadRepo.List(ctx)
	if err != nil {
		return nil, persistence("liste des prospects", err)
	}

	out := make([]LeadOutput, 0, len(leads))
	for _, lead := range leads {
		project, err := uc.ProjectRepo.FindByLeadID(ctx, lead.ID)
		if err != nil {
			return nil, persistence("lecture du projet", err)
		}
		out = append(out, toLeadOutput(lead, project))
	}
	return out, nil
}

func (uc *ListLeadsUseCase) ExecuteOne(ctx context.Context, leadID string) (*LeadOutput, error) {
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Code: "lead_not_found", Message: "prospect introuvable"}
		}
		return nil, persistence("lecture du prospect", err)
	}

	project, err := uc.ProjectRepo.FindByLeadID(ctx, leadID)
	if err != nil {
		return nil, persistence("lecture du projet", err)
	}

	out := toLeadOutput(lead, project)
	return &out, nil
}

func toLeadOutput(lead *entity.Lead, project *entity.Project) LeadOutput {
	out := LeadOutput{
		ID:               lead.ID,
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            lead.Phone,
		PostalCode:       lead.PostalCode,
		PropertyType:     lead.PropertyType,
		ConstructionYear: lead.ConstructionYear,
		Occupants:        lead.Occupants,
		OccupancyStatus:  lead.OccupancyStatus,
		IncomeRange:      lead.IncomeRange,
		PlannedWorks:     lead.PlannedWorks,
		SubmittedAt:      lead.SubmittedAt,
	}

	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	var contact, appointment, work, payment string
	if project != nil {
		contact = deref(project.ContactStatus)
		appointment = deref(project.AppointmentStatus)
		work = deref(project.WorkStatus)
		payment = deref(project.PaymentStatus)
		out.ContactComment = deref(project.ContactComment)
	}

	out.ContactStatus = status.ToUI(status.CategoryContact, contact)
	out.AppointmentStatus = status.ToUI(status.CategoryMeeting, appointment)
	out.WorkStatus = status.ToUI(status.CategoryWork, work)
	out.PaymentStatus = status.ToUI(status.CategoryPayment, payment)
	return out
}
