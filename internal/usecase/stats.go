package usecase

import (
	"context"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

// StatsOutput feeds the dashboard cards.
type StatsOutput struct {
	TotalLeads       int `json:"total_leads"`
	ContactedLeads   int `json:"contacted_leads"`
	MeetingsWon      int `json:"meetings_won"`
	WorksInProgress  int `json:"works_in_progress"`
	WorksCompleted   int `json:"works_completed"`
	PaidProjects     int `json:"paid_projects"`
	PendingCallbacks int `json:"pending_callbacks"`
}

type StatsUseCase struct {
	LeadRepo     entity.LeadRepositoryInterface
	ProjectRepo  entity.ProjectRepositoryInterface
	CallbackRepo entity.CallbackRepositoryInterface
}

func NewStatsUseCase(
	leadRepo entity.LeadRepositoryInterface,
	projectRepo entity.ProjectRepositoryInterface,
	callbackRepo entity.CallbackRepositoryInterface,
) *StatsUseCase {
	return &StatsUseCase{LeadRepo: leadRepo, ProjectRepo: projectRepo, CallbackRepo: callbackRepo}
}

func (uc *StatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	leads, err := uc.LeadRepo.List(ctx)
	if err != nil {
		return nil, persistence("liste des prospects", err)
	}

	out := &StatsOutput{TotalLeads: len(leads)}

	counts := []struct {
		dest  *int
		field entity.ProjectField
		value string
	}{
		{&out.ContactedLeads, entity.FieldContactStatus, string(entity.PhaseSuccess)},
		{&out.MeetingsWon, entity.FieldAppointmentStatus, string(entity.PhaseSuccess)},
		{&out.WorksInProgress, entity.FieldWorkStatus, string(entity.WorkInProgress)},
		{&out.WorksCompleted, entity.FieldWorkStatus, string(entity.WorkCompleted)},
		{&out.PaidProjects, entity.FieldPaymentStatus, string(entity.PaymentPaid)},
	}
	for _, c := range counts {
		n, err := uc.ProjectRepo.CountByStatus(ctx, c.field, c.value)
		if err != nil {
			return nil, persistence("comptage des projets", err)
		}
		*c.dest = n
	}

	callbacks, err := uc.CallbackRepo.List(ctx)
	if err != nil {
		return nil, persistence("liste des demandes de rappel", err)
	}
	for _, cb := range callbacks {
		if cb.Status == entity.CallbackPending {
			out.PendingCallbacks++
		}
	}

	return out, nil
}
