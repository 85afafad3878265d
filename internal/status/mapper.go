// Package status translates between the French dropdown vocabulary shown
// in the dashboard and the smaller English vocabulary stored in the
// projects table. The forward direction is deliberately lossy: planifié
// and non_commencé collapse to not_started, and partiellement_payé is
// sent as "partial", a value the storage layer accepts even though it is
// outside the payment_status enum. The reverse direction can therefore
// never reconstruct those two UI values.
package status

import (
	"fmt"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

// Category selects which dropdown a value belongs to.
type Category string

const (
	CategoryContact Category = "contact"
	CategoryMeeting Category = "meeting"
	CategoryWork    Category = "work"
	CategoryPayment Category = "payment"
)

// UI vocabulary, as displayed.
const (
	UINouveau           = "nouveau"
	UIContacte          = "contacté"
	UIConcluant         = "concluant"
	UINonConcluant      = "non-concluant"
	UIEnAttente         = "en_attente"
	UITermine           = "terminé"
	UIEnCours           = "en_cours"
	UIPlanifie          = "planifié"
	UINonCommence       = "non_commencé"
	UIPaye              = "payé"
	UIPartiellementPaye = "partiellement_payé"
	UINonPaye           = "non_payé"
)

// BackendPartial is what partiellement_payé maps to. It is not part of
// the payment_status enum; see the mapping note above.
const BackendPartial = "partial"

// UnknownValueError reports a UI value outside its category's closed set,
// or an unknown category.
type UnknownValueError struct {
	Category Category
	Value    string
}

func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("statut inconnu %q pour la catégorie %q", e.Value, e.Category)
}

var forward = map[Category]map[string]string{
	CategoryContact: {
		UIContacte: "success",
		UINouveau:  "pending",
	},
	CategoryMeeting: {
		UIConcluant:    "success",
		UINonConcluant: "failure",
		UIEnAttente:    "pending",
	},
	CategoryWork: {
		UITermine:     "completed",
		UIEnCours:     "in_progress",
		UIPlanifie:    "not_started",
		UINonCommence: "not_started",
	},
	CategoryPayment: {
		UIPaye:              "paid",
		UIPartiellementPaye: BackendPartial,
		UINonPaye:           "rejected",
		UIEnAttente:         "pending",
	},
}

// ToBackend maps a UI value onto its stored value. It fails with
// *UnknownValueError for anything outside the category's set, and never
// touches other fields on failure.
func ToBackend(cat Category, uiValue string) (string, error) {
	values, ok := forward[cat]
	if !ok {
		return "", &UnknownValueError{Category: cat, Value: uiValue}
	}
	backend, ok := values[uiValue]
	if !ok {
		return "", &UnknownValueError{Category: cat, Value: uiValue}
	}
	return backend, nil
}

// ToUI maps a stored value back onto a UI value. It is total: any value
// outside the backend enum, including "partial", falls back to the
// category's pending-equivalent.
func ToUI(cat Category, backendValue string) string {
	switch cat {
	case CategoryContact:
		switch backendValue {
		case "success":
			return UIContacte
		default:
			return UINouveau
		}
	case CategoryMeeting:
		switch backendValue {
		case "success":
			return UIConcluant
		case "failure":
			return UINonConcluant
		default:
			return UIEnAttente
		}
	case CategoryWork:
		switch backendValue {
		case "completed":
			return UITermine
		case "in_progress":
			return UIEnCours
		default:
			return UINonCommence
		}
	case CategoryPayment:
		switch backendValue {
		case "paid":
			return UIPaye
		case "rejected":
			return UINonPaye
		default:
			return UIEnAttente
		}
	}
	return UIEnAttente
}

// Field returns the project column a category writes to.
func Field(cat Category) entity.ProjectField {
	switch cat {
	case CategoryContact:
		return entity.FieldContactStatus
	case CategoryMeeting:
		return entity.FieldAppointmentStatus
	case CategoryWork:
		return entity.FieldWorkStatus
	case CategoryPayment:
		return entity.FieldPaymentStatus
	}
	return ""
}
