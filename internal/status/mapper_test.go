package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

func TestToBackendForwardTable(t *testing.T) {
	cases := []struct {
		cat     Category
		ui      string
		backend string
	}{
		{CategoryContact, UIContacte, "success"},
		{CategoryContact, UINouveau, "pending"},
		{CategoryMeeting, UIConcluant, "success"},
		{CategoryMeeting, UINonConcluant, "failure"},
		{CategoryMeeting, UIEnAttente, "pending"},
		{CategoryWork, UITermine, "completed"},
		{CategoryWork, UIEnCours, "in_progress"},
		{CategoryWork, UIPlanifie, "not_started"},
		{CategoryWork, UINonCommence, "not_started"},
		{CategoryPayment, UIPaye, "paid"},
		{CategoryPayment, UIPartiellementPaye, "partial"},
		{CategoryPayment, UINonPaye, "rejected"},
		{CategoryPayment, UIEnAttente, "pending"},
	}

	for _, c := range cases {
		got, err := ToBackend(c.cat, c.ui)
		require.NoError(t, err, "%s/%s", c.cat, c.ui)
		assert.Equal(t, c.backend, got, "%s/%s", c.cat, c.ui)
	}
}

func TestToBackendUnknownValue(t *testing.T) {
	_, err := ToBackend(CategoryContact, "rendez-vous")
	require.Error(t, err)

	var unknown *UnknownValueError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, CategoryContact, unknown.Category)
	assert.Equal(t, "rendez-vous", unknown.Value)

	// A meeting value is not a work value.
	_, err = ToBackend(CategoryWork, UIConcluant)
	assert.Error(t, err)

	// Unknown category fails too.
	_, err = ToBackend(Category("facturation"), UIPaye)
	assert.Error(t, err)
}

func TestToUIIsTotal(t *testing.T) {
	backendValues := map[Category][]string{
		CategoryContact: {"success", "failure", "pending"},
		CategoryMeeting: {"success", "failure", "pending"},
		CategoryWork:    {"not_started", "in_progress", "completed"},
		CategoryPayment: {"paid", "pending", "rejected"},
	}

	for cat, values := range backendValues {
		for _, v := range values {
			assert.NotEmpty(t, ToUI(cat, v), "%s/%s", cat, v)
		}
		// Garbage never panics and lands on the pending-equivalent.
		assert.NotEmpty(t, ToUI(cat, "n'importe quoi"))
	}

	assert.Equal(t, UIContacte, ToUI(CategoryContact, "success"))
	assert.Equal(t, UINonConcluant, ToUI(CategoryMeeting, "failure"))
	assert.Equal(t, UIEnCours, ToUI(CategoryWork, "in_progress"))
	assert.Equal(t, UINonPaye, ToUI(CategoryPayment, "rejected"))
}

// The contact and meeting categories round-trip cleanly.
func TestRoundTripLossless(t *testing.T) {
	for _, c := range []struct {
		cat Category
		ui  string
	}{
		{CategoryContact, UINouveau},
		{CategoryContact, UIContacte},
		{CategoryMeeting, UIConcluant},
		{CategoryMeeting, UINonConcluant},
		{CategoryMeeting, UIEnAttente},
	} {
		backend, err := ToBackend(c.cat, c.ui)
		require.NoError(t, err)
		assert.Equal(t, c.ui, ToUI(c.cat, backend))
	}
}

// The work and payment categories collapse two UI values onto one stored
// value, so the round trip lands on a defined but different value.
func TestRoundTripLossy(t *testing.T) {
	backend, err := ToBackend(CategoryWork, UIPlanifie)
	require.NoError(t, err)
	assert.Equal(t, UINonCommence, ToUI(CategoryWork, backend))

	backend, err = ToBackend(CategoryPayment, UIPartiellementPaye)
	require.NoError(t, err)
	assert.Equal(t, UIEnAttente, ToUI(CategoryPayment, backend))
}

func TestField(t *testing.T) {
	assert.Equal(t, entity.FieldContactStatus, Field(CategoryContact))
	assert.Equal(t, entity.FieldAppointmentStatus, Field(CategoryMeeting))
	assert.Equal(t, entity.FieldWorkStatus, Field(CategoryWork))
	assert.Equal(t, entity.FieldPaymentStatus, Field(CategoryPayment))
	assert.Empty(t, Field(Category("autre")))
}
