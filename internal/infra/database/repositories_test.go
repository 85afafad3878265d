package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

func TestLeadRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	submitted := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "phone", "postal_code", "property_type",
		"construction_year", "occupants", "occupancy_status", "income_range",
		"planned_works", "created_at",
	}).AddRow(
		"lead-1", "Marie Dupont", "marie@example.com", "06 12 34 56 78",
		"33000", "maison", "avant 1990", "3", "propriétaire", "moins de 40000",
		`{"isolation des combles","panneaux solaires"}`, submitted,
	)

	mock.ExpectQuery("SELECT(.|\n)+FROM eligibility_submissions(.|\n)+ORDER BY created_at DESC").
		WillReturnRows(rows)

	repo := NewLeadRepository(db)
	leads, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Marie Dupont", leads[0].Name)
	assert.Equal(t, []string{"isolation des combles", "panneaux solaires"}, leads[0].PlannedWorks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)+FROM eligibility_submissions(.|\n)+WHERE id").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewLeadRepository(db)
	lead, err := repo.FindByID(context.Background(), "ghost")

	assert.Nil(t, lead)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestProjectRepositoryApplyFieldUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO projects(.|\n)+contact_status(.|\n)+ON CONFLICT \(eligibility_submission_id\)(.|\n)+RETURNING id, \(xmax = 0\)`).
		WithArgs("lead-1", "success").
		WillReturnRows(sqlmock.NewRows([]string{"id", "?column?"}).AddRow("proj-1", true))

	repo := NewProjectRepository(db)
	projectID, created, err := repo.ApplyField(context.Background(), "lead-1", entity.FieldContactStatus, "success")

	require.NoError(t, err)
	assert.Equal(t, "proj-1", projectID)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepositoryApplyFieldRejectsUnknownColumn(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProjectRepository(db)
	_, _, err = repo.ApplyField(context.Background(), "lead-1", entity.ProjectField("id; DROP TABLE projects"), "x")

	assert.ErrorIs(t, err, errUnknownProjectField)
}

func TestProjectRepositoryFindByLeadIDAbsentIsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT(.|\n)+FROM projects(.|\n)+WHERE eligibility_submission_id").
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewProjectRepository(db)
	project, err := repo.FindByLeadID(context.Background(), "lead-1")

	assert.NoError(t, err)
	assert.Nil(t, project)
}

func TestProjectRepositoryEnsure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO projects(.|\n)+ON CONFLICT \(eligibility_submission_id\)(.|\n)+RETURNING id`).
		WithArgs("lead-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("proj-1"))

	repo := NewProjectRepository(db)
	projectID, err := repo.Ensure(context.Background(), "lead-1")

	require.NoError(t, err)
	assert.Equal(t, "proj-1", projectID)
}

func TestCallbackRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE callback_requests SET status").
		WithArgs(entity.CallbackCompleted, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCallbackRepository(db)
	err = repo.UpdateStatus(context.Background(), "ghost", entity.CallbackCompleted)

	assert.ErrorIs(t, err, entity.ErrCallbackNotFound)
}

func TestProposalRepositoryCreateStoresAmountsAsNumerics(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cout := "15 000,50"
	invalid := "à définir"
	data := entity.PropositionData{}
	data.Client.Nom = "Marie Dupont"
	data.Financier.CoutTotal = &cout
	data.Financier.RestantCharge = &invalid

	proposal := entity.NewProposal("proj-1", data)

	mock.ExpectExec("INSERT INTO proposals").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewProposalRepository(db)
	require.NoError(t, repo.Create(context.Background(), proposal))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAsNumeric(t *testing.T) {
	v := func(s string) *string { return &s }

	assert.Nil(t, asNumeric(nil))
	assert.Nil(t, asNumeric(v("à définir")))
	assert.Equal(t, 15000.5, asNumeric(v("15 000,50")))
	assert.Equal(t, 12500.0, asNumeric(v(" 12500 ")))
}
