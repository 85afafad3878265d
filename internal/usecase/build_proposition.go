package usecase

import (
	"strings"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

// BuildPropositionData folds the flat proposal form into the nested
// document model. A field left untouched on the form stays a nil pointer
// so the PDF renders its slot blank instead of "".
func BuildPropositionData(lead *entity.Lead, values map[string]string) entity.PropositionData {
	leaf := func(key string) *string {
		raw, ok := values[key]
		if !ok {
			return nil
		}
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		return &trimmed
	}

	data := entity.PropositionData{
		Client: entity.ClientBlock{
			Nom:       lead.Name,
			Adresse:   lead.PostalCode,
			Email:     lead.Email,
			Telephone: lead.Phone,
		},
	}

	data.Travaux.Combles = entity.Combles{
		Materiau: leaf("combles-materiau"),
		Surface:  leaf("combles-surface"),
	}
	data.Travaux.SousRampants = entity.SousRampants{
		Materiau: leaf("sous-rampants-materiau"),
		Surface:  leaf("sous-rampants-surface"),
	}
	data.Travaux.PlanchersBas = entity.PlanchersBas{
		Materiau: leaf("planchers-bas-materiau"),
		Surface:  leaf("planchers-bas-surface"),
	}
	data.Travaux.Murs = entity.Murs{
		Methode:  leaf("murs-methode"),
		Materiau: leaf("murs-materiau"),
		Surface:  leaf("murs-surface"),
	}
	data.Travaux.Chauffage = entity.Chauffage{
		Actuel:       leaf("chauffage-actuel"),
		Remplacement: leaf("chauffage-remplacement"),
	}
	data.Travaux.ChauffeEau = entity.ChauffeEau{
		Actuel:  leaf("chauffe-eau-actuel"),
		Propose: leaf("chauffe-eau-propose"),
	}
	data.Travaux.Ventilation = entity.Ventilation{
		Actuel:       leaf("ventilation-actuel"),
		Propose:      leaf("ventilation-propose"),
		NombreBouche: leaf("ventilation-nombre-bouche"),
	}
	data.Travaux.Menuiseries = entity.Menuiseries{
		Materiau: leaf("menuiseries-materiau"),
		Couleur:  leaf("menuiseries-couleur"),
	}
	data.Travaux.PanneauxSolaires = entity.PanneauxSolaires{
		MarqueModeleOnduleur: leaf("solaire-marque-modele-onduleur"),
		NombreOnduleur:       leaf("solaire-nombre-onduleur"),
		Puissance:            leaf("solaire-puissance"),
		MarqueModele:         leaf("solaire-marque-modele"),
		NombrePanneaux:       leaf("solaire-nombre-panneaux"),
	}

	data.Financier = entity.FinancierBlock{
		CoutTotal:          leaf("cout-total"),
		MontantSubventions: leaf("montant-subventions"),
		RestantCharge:      leaf("restant-charge"),
	}

	return data
}
