package database

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

// ProposalRepository persists proposals in their historical flat layout:
// one column per form field, financial values as numerics. The nested
// document model only exists in memory and in the PDF.
type ProposalRepository struct {
	DB *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

const proposalColumns = `
	id, project_id,
	attic_material, attic_surface,
	ramp_material, ramp_surface,
	floor_material, floor_surface,
	wall_method, wall_material, wall_surface,
	current_heating, replacement_heating,
	current_water_heater, proposed_water_heater,
	current_ventilation, proposed_ventilation, ventilation_outlets,
	window_material, window_color,
	solar_inverter_brand_model, solar_inverter_count, solar_power,
	solar_panel_brand_model, solar_panel_count,
	client_name, client_address, client_email, client_phone,
	total_cost, subsidies_amount, remaining_cost,
	signature_url, signed_document_url, signed_at, created_at
`

func (r *ProposalRepository) Create(ctx context.Context, p *entity.Proposal) error {
	query := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
		        $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)
	`

	t := p.Data.Travaux
	f := p.Data.Financier
	c := p.Data.Client

	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.ProjectID,
		t.Combles.Materiau, t.Combles.Surface,
		t.SousRampants.Materiau, t.SousRampants.Surface,
		t.PlanchersBas.Materiau, t.PlanchersBas.Surface,
		t.Murs.Methode, t.Murs.Materiau, t.Murs.Surface,
		t.Chauffage.Actuel, t.Chauffage.Remplacement,
		t.ChauffeEau.Actuel, t.ChauffeEau.Propose,
		t.Ventilation.Actuel, t.Ventilation.Propose, t.Ventilation.NombreBouche,
		t.Menuiseries.Materiau, t.Menuiseries.Couleur,
		t.PanneauxSolaires.MarqueModeleOnduleur, t.PanneauxSolaires.NombreOnduleur,
		t.PanneauxSolaires.Puissance,
		t.PanneauxSolaires.MarqueModele, t.PanneauxSolaires.NombrePanneaux,
		c.Nom, c.Adresse, c.Email, c.Telephone,
		asNumeric(f.CoutTotal), asNumeric(f.MontantSubventions), asNumeric(f.RestantCharge),
		p.SignatureURL,
		p.SignedDocumentURL,
		p.SignedAt,
		p.CreatedAt,
	)
	return err
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	p, err := scanProposal(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrProposalNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProposalRepository) ListByProjectID(ctx context.Context, projectID string) ([]*entity.Proposal, error) {
	query := `
		SELECT ` + proposalColumns + `
		FROM proposals
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proposals []*entity.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func scanProposal(row rowScanner) (*entity.Proposal, error) {
	var p entity.Proposal
	t := &p.Data.Travaux
	c := &p.Data.Client

	var coutTotal, montantSubventions, restantCharge sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.ProjectID,
		&t.Combles.Materiau, &t.Combles.Surface,
		&t.SousRampants.Materiau, &t.SousRampants.Surface,
		&t.PlanchersBas.Materiau, &t.PlanchersBas.Surface,
		&t.Murs.Methode, &t.Murs.Materiau, &t.Murs.Surface,
		&t.Chauffage.Actuel, &t.Chauffage.Remplacement,
		&t.ChauffeEau.Actuel, &t.ChauffeEau.Propose,
		&t.Ventilation.Actuel, &t.Ventilation.Propose, &t.Ventilation.NombreBouche,
		&t.Menuiseries.Materiau, &t.Menuiseries.Couleur,
		&t.PanneauxSolaires.MarqueModeleOnduleur, &t.PanneauxSolaires.NombreOnduleur,
		&t.PanneauxSolaires.Puissance,
		&t.PanneauxSolaires.MarqueModele, &t.PanneauxSolaires.NombrePanneaux,
		&c.Nom, &c.Adresse, &c.Email, &c.Telephone,
		&coutTotal, &montantSubventions, &restantCharge,
		&p.SignatureURL,
		&p.SignedDocumentURL,
		&p.SignedAt,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Data.Financier.CoutTotal = fromNumeric(coutTotal)
	p.Data.Financier.MontantSubventions = fromNumeric(montantSubventions)
	p.Data.Financier.RestantCharge = fromNumeric(restantCharge)
	return &p, nil
}

// asNumeric parses a form amount for a numeric column. The form accepts
// free text, so anything unparseable is stored as NULL rather than
// failing the signature flow.
func asNumeric(s *string) any {
	if s == nil {
		return nil
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(*s), ",", ".")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return v
}

func fromNumeric(n sql.NullFloat64) *string {
	if !n.Valid {
		return nil
	}
	s := strconv.FormatFloat(n.Float64, 'f', -1, 64)
	return &s
}
