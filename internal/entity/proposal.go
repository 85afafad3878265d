package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProposalNotFound = errors.New("proposition introuvable")

// ClientBlock identifies the client on the proposal. Always filled from
// the selected lead, never edited independently.
type ClientBlock struct {
	Nom       string `json:"nom"`
	Adresse   string `json:"adresse"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}

// Every travaux leaf is an optional string: nil means the field was left
// out of the form, which is not the same thing as an explicit blank.

type Combles struct {
	Materiau *string `json:"materiau,omitempty"`
	Surface  *string `json:"surface,omitempty"`
}

type SousRampants struct {
	Materiau *string `json:"materiau,omitempty"`
	Surface  *string `json:"surface,omitempty"`
}

type PlanchersBas struct {
	Materiau *string `json:"materiau,omitempty"`
	Surface  *string `json:"surface,omitempty"`
}

type Murs struct {
	// Methode is "interieur" or "exterieur" when set.
	Methode  *string `json:"methode,omitempty"`
	Materiau *string `json:"materiau,omitempty"`
	Surface  *string `json:"surface,omitempty"`
}

type Chauffage struct {
	Actuel       *string `json:"actuel,omitempty"`
	Remplacement *string `json:"remplacement,omitempty"`
}

type ChauffeEau struct {
	Actuel  *string `json:"actuel,omitempty"`
	Propose *string `json:"propose,omitempty"`
}

type Ventilation struct {
	Actuel       *string `json:"actuel,omitempty"`
	Propose      *string `json:"propose,omitempty"`
	NombreBouche *string `json:"nombreBouche,omitempty"`
}

type Menuiseries struct {
	Materiau *string `json:"materiau,omitempty"`
	Couleur  *string `json:"couleur,omitempty"`
}

type PanneauxSolaires struct {
	MarqueModeleOnduleur *string `json:"marqueModeleOnduleur,omitempty"`
	NombreOnduleur       *string `json:"nombreOnduleur,omitempty"`
	Puissance            *string `json:"puissance,omitempty"`
	MarqueModele         *string `json:"marqueModele,omitempty"`
	NombrePanneaux       *string `json:"nombrePanneaux,omitempty"`
}

type TravauxBlock struct {
	Combles          Combles          `json:"combles"`
	SousRampants     SousRampants     `json:"sousRampants"`
	PlanchersBas     PlanchersBas     `json:"planchersBas"`
	Murs             Murs             `json:"murs"`
	Chauffage        Chauffage        `json:"chauffage"`
	ChauffeEau       ChauffeEau       `json:"chauffeEau"`
	Ventilation      Ventilation      `json:"ventilation"`
	Menuiseries      Menuiseries      `json:"menuiseries"`
	PanneauxSolaires PanneauxSolaires `json:"panneauxSolaires"`
}

type FinancierBlock struct {
	CoutTotal          *string `json:"coutTotal,omitempty"`
	MontantSubventions *string `json:"montantSubventions,omitempty"`
	RestantCharge      *string `json:"restantCharge,omitempty"`
}

// PropositionData is the in-memory proposal built from the form. It only
// lives between form submission and the insert of the signed proposal row.
type PropositionData struct {
	Client    ClientBlock    `json:"client"`
	Travaux   TravauxBlock   `json:"travaux"`
	Financier FinancierBlock `json:"financier"`
}

// Proposal is a signed work proposal: the proposition snapshot at signing
// time plus references to the generated PDF and the signature image.
// Append-only, no update or delete.
type Proposal struct {
	ID                string          `json:"id"`
	ProjectID         string          `json:"project_id"`
	Data              PropositionData `json:"proposition_data"`
	SignatureURL      string          `json:"signature_url"`
	SignedDocumentURL string          `json:"signed_document_url"`
	SignedAt          time.Time       `json:"signed_at"`
	CreatedAt         time.Time       `json:"created_at"`
}

func NewProposal(projectID string, data PropositionData) *Proposal {
	now := time.Now()
	return &Proposal{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Data:      data,
		SignedAt:  now,
		CreatedAt: now,
	}
}

type ProposalRepositoryInterface interface {
	Create(ctx context.Context, p *Proposal) error
	FindByID(ctx context.Context, id string) (*Proposal, error)
	ListByProjectID(ctx context.Context, projectID string) ([]*Proposal, error)
}
