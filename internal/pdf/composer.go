// Package pdf renders a signed work proposal as a fixed three-page A4
// document. The template never reflows: every field has a fixed position
// and absent values print as blanks, so the page count is an invariant of
// the template, not of the data.
package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/fhhabitat/renov-admin/internal/entity"
)

const (
	pageWidth  = 210.0
	marginLeft = 12.0
	marginTop  = 8.0

	headerLogoW   = 26.0
	headerBottomY = 42.0

	labelFontSize = 9.0
	valueFontSize = 10.0

	// Value cells are clipped so an oversized entry cannot paint over
	// its neighbours.
	valueCellH = 6.0
)

const engagementText = "Le client reconnaît avoir pris connaissance de la présente proposition de travaux " +
	"et des conditions d'exécution associées. La signature du présent document vaut accord sur la nature " +
	"des travaux décrits, leur estimation financière et le montant restant à charge après déduction des " +
	"subventions mobilisables. Cette proposition est établie sous réserve de la validation technique du " +
	"logement et de l'acceptation des dossiers de subvention par les organismes concernés. Le client " +
	"dispose d'un délai de rétractation de quatorze jours à compter de la signature, conformément aux " +
	"dispositions du code de la consommation."

// Config carries the fixed branding rendered in every page header. Logo
// payloads are optional; an undecodable or missing logo leaves its slot
// blank, it never aborts composition.
type Config struct {
	CompanyName    string
	CompanyAddress string
	LogoPrimary    []byte
	LogoSecondary  []byte
	Now            func() time.Time
}

type Composer struct {
	cfg Config
}

func NewComposer(cfg Config) *Composer {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Composer{cfg: cfg}
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// Compose renders the proposition plus the signature raster into the
// three-page template and returns the document bytes.
func (c *Composer) Compose(data entity.PropositionData, signaturePNG []byte) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Proposition de travaux", true)
	doc.SetAutoPageBreak(false, 0)

	r := &renderer{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	logoPrimary := r.registerImage("logo-primary", c.cfg.LogoPrimary)
	logoSecondary := r.registerImage("logo-secondary", c.cfg.LogoSecondary)
	signatureName := r.registerImage("signature", signaturePNG)

	// Page 1: client block, the four insulation posts, heating, water
	// heater and ventilation.
	doc.AddPage()
	r.header(c.cfg, logoPrimary, logoSecondary)
	r.clientBlock(data.Client)
	r.page1Travaux(data.Travaux)

	// Page 2: windows and solar.
	doc.AddPage()
	r.header(c.cfg, logoPrimary, logoSecondary)
	r.page2Travaux(data.Travaux)

	// Page 3: financials, engagement text, signature.
	doc.AddPage()
	r.header(c.cfg, logoPrimary, logoSecondary)
	r.page3(data.Financier, signatureName, c.cfg.Now())

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("génération du PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName builds the download name for a composed proposal.
func FileName(leadName string, t time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(leadName), " ", "_")
	if name == "" {
		name = "client"
	}
	return fmt.Sprintf("Proposition_%s_%s.pdf", name, t.Format("2006-01-02"))
}

// registerImage decodes and registers an image payload, returning the
// registered name or "" when the payload is absent or unreadable. A bad
// image only blanks its slot.
func (r *renderer) registerImage(name string, payload []byte) string {
	if len(payload) == 0 {
		return ""
	}
	_, format, err := image.Decode(bytes.NewReader(payload))
	if err != nil {
		return ""
	}
	if format != "png" && format != "jpeg" {
		return ""
	}
	opts := fpdf.ImageOptions{ImageType: format, ReadDpi: true}
	r.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(payload))
	if r.pdf.Err() {
		// Clear the sticky error so one bad image cannot poison the
		// rest of the document.
		r.pdf.ClearError()
		return ""
	}
	return name
}

func (r *renderer) placeImage(name string, x, y, w, h float64) {
	if name == "" {
		return
	}
	opts := fpdf.ImageOptions{ReadDpi: true}
	r.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

// header repeats on every page: two logo slots, company identity and the
// document title.
func (r *renderer) header(cfg Config, logoPrimary, logoSecondary string) {
	p := r.pdf

	r.placeImage(logoPrimary, marginLeft, marginTop, headerLogoW, 0)
	r.placeImage(logoSecondary, pageWidth-marginLeft-headerLogoW, marginTop, headerLogoW, 0)

	p.SetFont("Helvetica", "B", 14)
	p.SetXY(0, marginTop+4)
	p.CellFormat(pageWidth, 7, r.tr(cfg.CompanyName), "", 0, "C", false, 0, "")

	p.SetFont("Helvetica", "", 8)
	p.SetXY(0, marginTop+11)
	p.CellFormat(pageWidth, 5, r.tr(cfg.CompanyAddress), "", 0, "C", false, 0, "")

	p.SetFont("Helvetica", "B", 13)
	p.SetXY(0, marginTop+22)
	p.CellFormat(pageWidth, 8, r.tr("Proposition de travaux"), "", 0, "C", false, 0, "")

	p.SetDrawColor(60, 60, 60)
	p.Line(marginLeft, headerBottomY-2, pageWidth-marginLeft, headerBottomY-2)
}

// sectionTitle draws the grey band that opens each template section.
func (r *renderer) sectionTitle(y float64, title string) {
	p := r.pdf
	p.SetFillColor(235, 235, 235)
	p.Rect(marginLeft, y, pageWidth-2*marginLeft, 7, "F")
	p.SetFont("Helvetica", "B", 10)
	p.SetXY(marginLeft+2, y)
	p.CellFormat(pageWidth-2*marginLeft-4, 7, r.tr(title), "", 0, "L", false, 0, "")
}

// field prints one label/value pair at a fixed position. The value is
// clipped to its cell: a too-long entry truncates visually instead of
// bleeding into the next column.
func (r *renderer) field(x, y, valueW float64, label string, value *string) {
	p := r.pdf

	p.SetFont("Helvetica", "", labelFontSize)
	p.SetTextColor(90, 90, 90)
	p.SetXY(x, y)
	p.CellFormat(valueW, 4, r.tr(label), "", 0, "L", false, 0, "")

	v := ""
	if value != nil {
		v = *value
	}
	p.SetFont("Helvetica", "", valueFontSize)
	p.SetTextColor(0, 0, 0)
	p.ClipRect(x, y+4, valueW, valueCellH, false)
	p.SetXY(x, y+4)
	p.CellFormat(valueW, valueCellH, r.tr(v), "", 0, "L", false, 0, "")
	p.ClipEnd()

	p.SetDrawColor(170, 170, 170)
	p.Line(x, y+4+valueCellH, x+valueW, y+4+valueCellH)
}

func (r *renderer) fieldText(x, y, valueW float64, label, value string) {
	r.field(x, y, valueW, label, &value)
}

const (
	colLeft   = marginLeft + 2
	colRight  = 110.0
	colWidth  = 84.0
	colThird  = 68.0
	rowHeight = 13.0
)

func (r *renderer) clientBlock(c entity.ClientBlock) {
	y := headerBottomY + 2
	r.sectionTitle(y, "Identification du client")
	y += 10
	r.fieldText(colLeft, y, colWidth, "Nom", c.Nom)
	r.fieldText(colRight, y, colWidth, "Adresse", c.Adresse)
	y += rowHeight
	r.fieldText(colLeft, y, colWidth, "Email", c.Email)
	r.fieldText(colRight, y, colWidth, "Téléphone", c.Telephone)
}

func (r *renderer) page1Travaux(t entity.TravauxBlock) {
	y := headerBottomY + 34

	r.sectionTitle(y, "Isolation des combles")
	r.field(colLeft, y+10, colWidth, "Type de matériau", t.Combles.Materiau)
	r.field(colRight, y+10, colWidth, "Surface", t.Combles.Surface)
	y += 26

	r.sectionTitle(y, "Isolation des sous-rampants")
	r.field(colLeft, y+10, colWidth, "Type de matériau", t.SousRampants.Materiau)
	r.field(colRight, y+10, colWidth, "Surface", t.SousRampants.Surface)
	y += 26

	r.sectionTitle(y, "Isolation des planchers bas")
	r.field(colLeft, y+10, colWidth, "Type de matériau", t.PlanchersBas.Materiau)
	r.field(colRight, y+10, colWidth, "Surface", t.PlanchersBas.Surface)
	y += 26

	r.sectionTitle(y, "Isolation des murs donnant sur l'extérieur")
	r.field(colLeft, y+10, colThird-14, "Méthode", methodeLabel(t.Murs.Methode))
	r.field(colLeft+colThird-8, y+10, colThird, "Type de matériau", t.Murs.Materiau)
	r.field(colLeft+2*colThird, y+10, colThird-14, "Surface", t.Murs.Surface)
	y += 26

	r.sectionTitle(y, "Remplacement du mode de chauffage actuel")
	r.field(colLeft, y+10, colWidth, "Chauffage actuel", t.Chauffage.Actuel)
	r.field(colRight, y+10, colWidth, "Remplacer par", t.Chauffage.Remplacement)
	y += 26

	r.sectionTitle(y, "Remplacement du système de chauffe-eau actuel")
	r.field(colLeft, y+10, colWidth, "Actuel", t.ChauffeEau.Actuel)
	r.field(colRight, y+10, colWidth, "Système proposé", t.ChauffeEau.Propose)
	y += 26

	r.sectionTitle(y, "Remplacement du système de ventilation actuel")
	r.field(colLeft, y+10, colThird-14, "Type actuel", t.Ventilation.Actuel)
	r.field(colLeft+colThird-8, y+10, colThird, "Type proposé", t.Ventilation.Propose)
	r.field(colLeft+2*colThird, y+10, colThird-14, "Nombre de bouches", t.Ventilation.NombreBouche)
}

func (r *renderer) page2Travaux(t entity.TravauxBlock) {
	y := headerBottomY + 2

	r.sectionTitle(y, "Remplacement des menuiseries extérieures")
	r.field(colLeft, y+10, colWidth, "Matériau", t.Menuiseries.Materiau)
	r.field(colRight, y+10, colWidth, "Couleur", t.Menuiseries.Couleur)
	y += 30

	r.sectionTitle(y, "Panneau solaire photovoltaïque")
	r.field(colLeft, y+10, colWidth, "Marque et modèle onduleur", t.PanneauxSolaires.MarqueModeleOnduleur)
	r.field(colRight, y+10, colWidth, "Nombre d'onduleur", t.PanneauxSolaires.NombreOnduleur)
	r.field(colLeft, y+10+rowHeight, colWidth, "Puissance en Kw/c", t.PanneauxSolaires.Puissance)
	r.field(colRight, y+10+rowHeight, colWidth, "Marque et modèle", t.PanneauxSolaires.MarqueModele)
	r.field(colLeft, y+10+2*rowHeight, colWidth, "Nombre de panneaux", t.PanneauxSolaires.NombrePanneaux)
}

func (r *renderer) page3(f entity.FinancierBlock, signatureName string, now time.Time) {
	p := r.pdf
	y := headerBottomY + 2

	r.sectionTitle(y, "Estimation financière")
	r.field(colLeft, y+10, colThird-14, "Coût total des travaux", f.CoutTotal)
	r.field(colLeft+colThird-8, y+10, colThird, "Montant des subventions", f.MontantSubventions)
	r.field(colLeft+2*colThird, y+10, colThird-14, "Restant à charge client", f.RestantCharge)
	y += 32

	r.sectionTitle(y, "Engagement")
	p.SetFont("Helvetica", "", 9)
	p.SetTextColor(0, 0, 0)
	p.SetXY(colLeft, y+10)
	p.MultiCell(pageWidth-2*marginLeft-4, 4.5, r.tr(engagementText), "", "J", false)
	y += 66

	r.sectionTitle(y, "Signature du client")
	p.SetFont("Helvetica", "", valueFontSize)
	p.SetXY(colLeft, y+12)
	p.CellFormat(colWidth, 5, r.tr(fmt.Sprintf("Fait le %s", now.Format("02/01/2006"))), "", 0, "L", false, 0, "")

	p.SetDrawColor(120, 120, 120)
	p.Rect(colRight, y+10, colWidth, 32, "D")
	r.placeImage(signatureName, colRight+5, y+13, colWidth-10, 26)
}

func methodeLabel(m *string) *string {
	if m == nil {
		return nil
	}
	var label string
	switch *m {
	case "interieur":
		label = "Par l'intérieur"
	case "exterieur":
		label = "Par l'extérieur"
	default:
		label = *m
	}
	return &label
}
