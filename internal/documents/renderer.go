// Package documents renders the client-facing PDFs: the setup invoice and
// the services agreement.
package documents

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/theclaireai/claireops/internal/core"
)

// DefaultOutputDir lives under /tmp because cloud hosts often restrict
// writing to the app directory.
const DefaultOutputDir = "/tmp/documents"

const pageWidth = 210.0 // A4 portrait, mm

// Renderer implements core.DocumentRenderer with one canonical layout per
// document, parameterized by a design profile.
type Renderer struct {
	outputDir string
	profile   Profile
	now       func() time.Time
}

func NewRenderer(outputDir, profileName string) (*Renderer, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if profileName == "" {
		profileName = "institutional"
	}
	profile, err := BuiltinProfile(profileName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Renderer{outputDir: outputDir, profile: profile, now: time.Now}, nil
}

// WithClock overrides the renderer's clock.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

func (r *Renderer) fill(pdf *fpdf.Fpdf, c RGB) { pdf.SetFillColor(c[0], c[1], c[2]) }
func (r *Renderer) text(pdf *fpdf.Fpdf, c RGB) { pdf.SetTextColor(c[0], c[1], c[2]) }
func (r *Renderer) draw(pdf *fpdf.Fpdf, c RGB) { pdf.SetDrawColor(c[0], c[1], c[2]) }

// RenderInvoice draws the setup invoice and returns the file path.
func (r *Renderer) RenderInvoice(invoice core.Invoice, firmName, paymentURL string) (string, error) {
	p := r.profile
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header band
	r.fill(pdf, p.Primary)
	pdf.Rect(0, 0, pageWidth, 30, "F")
	r.fill(pdf, p.Accent)
	pdf.Rect(pageWidth/2, 0, pageWidth/2, 22, "F")

	pdf.SetFont("Helvetica", "B", 20)
	r.text(pdf, RGB{255, 255, 255})
	pdf.SetXY(15, 9)
	pdf.CellFormat(80, 10, p.Brand, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(110, 11)
	pdf.CellFormat(85, 6, p.Tagline, "", 0, "R", false, 0, "")

	// Title + meta
	pdf.SetXY(15, 40)
	pdf.SetFont("Helvetica", "", 28)
	r.text(pdf, p.Primary)
	pdf.CellFormat(120, 12, "Invoice", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	r.text(pdf, p.TextGray)
	pdf.CellFormat(60, 12, "# "+invoice.ID, "", 1, "R", false, 0, "")

	pdf.SetXY(135, 54)
	pdf.SetFont("Helvetica", "B", 9)
	r.text(pdf, p.TextDark)
	pdf.CellFormat(60, 5, "Balance Due", "", 1, "R", false, 0, "")
	pdf.SetX(135)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(60, 9, dollars(invoice.Amount), "", 1, "R", false, 0, "")

	// From / Bill To / dates
	issued := r.now().Format("Jan 2, 2006")
	pdf.SetXY(15, 56)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 5, p.FromName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	r.text(pdf, p.TextGray)
	pdf.CellFormat(90, 5, p.FromLocation, "", 1, "L", false, 0, "")
	pdf.CellFormat(90, 5, p.FromEmail, "", 1, "L", false, 0, "")

	pdf.Ln(6)
	pdf.CellFormat(90, 5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	r.text(pdf, p.TextDark)
	pdf.CellFormat(110, 6, firmName, "", 1, "L", false, 0, "")

	metaY := pdf.GetY() + 2
	for i, row := range [][2]string{
		{"Invoice Date :", issued},
		{"Terms :", "Due on Receipt"},
		{"Due Date :", issued},
	} {
		pdf.SetXY(120, metaY+float64(i)*5)
		pdf.SetFont("Helvetica", "", 9)
		r.text(pdf, p.TextGray)
		pdf.CellFormat(35, 5, row[0], "", 0, "R", false, 0, "")
		r.text(pdf, p.TextDark)
		pdf.CellFormat(40, 5, row[1], "", 0, "R", false, 0, "")
	}

	// Line-item table
	tableY := metaY + 22
	r.fill(pdf, p.Primary)
	pdf.Rect(15, tableY, 180, 9, "F")
	pdf.SetXY(15, tableY)
	pdf.SetFont("Helvetica", "B", 8)
	r.text(pdf, RGB{255, 255, 255})
	pdf.CellFormat(10, 9, "#", "", 0, "C", false, 0, "")
	pdf.CellFormat(100, 9, "Item & Description", "", 0, "L", false, 0, "")
	pdf.CellFormat(15, 9, "Qty", "", 0, "C", false, 0, "")
	pdf.CellFormat(25, 9, "Rate", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 9, "Amount", "", 1, "R", false, 0, "")

	rowY := tableY + 12
	pdf.SetXY(15, rowY)
	pdf.SetFont("Helvetica", "", 9)
	r.text(pdf, p.TextDark)
	pdf.CellFormat(10, 5, "1", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(100, 5, "Standard AI Receptionist Setup", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(15, 5, "1", "", 0, "C", false, 0, "")
	pdf.CellFormat(25, 5, amountCell(invoice.Amount), "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 5, amountCell(invoice.Amount), "", 1, "R", false, 0, "")

	pdf.SetXY(25, rowY+5)
	pdf.SetFont("Helvetica", "", 7)
	r.text(pdf, p.TextGray)
	pdf.MultiCell(100, 4, invoice.Description, "", "L", false)

	r.draw(pdf, RGB{224, 224, 224})
	pdf.Line(15, rowY+14, 195, rowY+14)

	// Totals
	totalY := rowY + 20
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range [][2]string{
		{"Sub Total", amountCell(invoice.Amount)},
		{"Tax (0%)", "0.00"},
	} {
		pdf.SetXY(130, totalY)
		r.text(pdf, p.TextGray)
		pdf.CellFormat(35, 5, row[0], "", 0, "R", false, 0, "")
		r.text(pdf, p.TextDark)
		pdf.CellFormat(30, 5, row[1], "", 1, "R", false, 0, "")
		totalY += 6
	}
	pdf.SetXY(130, totalY)
	pdf.SetFont("Helvetica", "B", 9)
	r.text(pdf, p.TextDark)
	pdf.CellFormat(35, 5, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 5, dollars(invoice.Amount), "", 1, "R", false, 0, "")

	// Balance-due box
	totalY += 9
	r.fill(pdf, p.Mint)
	pdf.Rect(125, totalY, 70, 11, "F")
	pdf.SetXY(127, totalY)
	pdf.CellFormat(33, 11, "Balance Due", "", 0, "L", false, 0, "")
	pdf.CellFormat(33, 11, dollars(invoice.Amount), "", 1, "R", false, 0, "")

	// Payment link
	if paymentURL != "" {
		pdf.SetXY(15, totalY+20)
		pdf.SetFont("Helvetica", "B", 9)
		r.text(pdf, p.Primary)
		pdf.CellFormat(50, 5, "Secure Payment Portal:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		r.text(pdf, p.TextGray)
		pdf.CellFormat(130, 5, paymentURL, "", 1, "L", false, 0, paymentURL)
	}

	// Footer band
	r.fill(pdf, p.Primary)
	pdf.Rect(0, 282, pageWidth, 15, "F")

	path := filepath.Join(r.outputDir, fmt.Sprintf("Invoice_%s.pdf", invoice.ID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}
	log.Printf("[Documents] Rendered invoice %s -> %s", invoice.ID, path)
	return path, nil
}

// RenderContract draws the master services agreement and returns the
// file path.
func (r *Renderer) RenderContract(firmName, archetype, paymentURL string) (string, error) {
	p := r.profile
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Header branding
	pdf.SetFont("Helvetica", "B", 18)
	r.text(pdf, p.Primary)
	pdf.CellFormat(90, 10, strings.ToUpper(p.Brand), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	r.text(pdf, p.TextGray)
	pdf.CellFormat(84, 10, p.Tagline, "", 1, "R", false, 0, "")
	r.draw(pdf, RGB{226, 232, 240})
	pdf.Line(18, 32, 192, 32)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 18)
	r.text(pdf, p.TextDark)
	pdf.CellFormat(0, 10, "Master Services Agreement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	r.text(pdf, p.TextGray)
	pdf.CellFormat(0, 5, "Agreement ID: CAI-"+strings.Split(uuid.NewString(), "-")[0], "", 1, "L", false, 0, "")

	// Summary band
	pdf.Ln(6)
	bandY := pdf.GetY()
	r.fill(pdf, p.Primary)
	pdf.Rect(18, bandY, 174, 22, "F")
	pdf.SetXY(24, bandY+4)
	pdf.SetFont("Helvetica", "B", 12)
	r.text(pdf, RGB{255, 255, 255})
	pdf.CellFormat(100, 7, "IMPLEMENTATION & CALIBRATION", "", 1, "L", false, 0, "")
	pdf.SetXY(24, bandY+12)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(100, 4, "Agent archetype: "+archetype, "", 0, "L", false, 0, "")

	pdf.SetY(bandY + 30)
	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		r.text(pdf, p.TextDark)
		pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	body := func(text string) {
		pdf.SetFont("Helvetica", "", 9)
		r.text(pdf, p.TextGray)
		pdf.MultiCell(174, 5, text, "", "L", false)
	}

	section("1. Engagement Overview")
	body(fmt.Sprintf("This agreement constitutes a binding contract between TheClaireAI (the \"Provider\") and %s (the \"Client\"). "+
		"Provider agrees to provision and calibrate a %s AI agent for the Client's operations.", firmName, archetype))

	pdf.Ln(3)
	section("1.1 Implementation Scope")
	for _, item := range []string{
		"Full configuration of intake logic for the Client's practice area.",
		"CRM deep integration.",
		"Initial voice prompt engineering and persona creation.",
		"Telephony provisioning and call forwarding activation.",
	} {
		pdf.SetFont("Helvetica", "", 9)
		r.text(pdf, p.TextGray)
		pdf.CellFormat(6, 5, "-", "", 0, "C", false, 0, "")
		pdf.MultiCell(168, 5, item, "", "L", false)
	}

	pdf.Ln(3)
	section("2. Financial Terms")
	body("Client agrees to the setup fee stated on the accompanying invoice. Completing the setup fee locks in the " +
		"matched subscription plan, which commences 14 days after the system is live.")

	if paymentURL != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		r.text(pdf, p.Primary)
		pdf.CellFormat(44, 5, "Secure Payment Portal:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		r.text(pdf, p.TextGray)
		pdf.CellFormat(130, 5, paymentURL, "", 1, "L", false, 0, paymentURL)
	}

	// Signature columns
	pdf.Ln(16)
	sigY := pdf.GetY()
	pdf.SetFont("Helvetica", "B", 11)
	r.text(pdf, p.TextDark)
	pdf.SetXY(18, sigY)
	pdf.CellFormat(80, 6, "TheClaireAI", "", 0, "L", false, 0, "")
	pdf.SetXY(110, sigY)
	pdf.CellFormat(82, 6, firmName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	r.text(pdf, p.TextGray)
	pdf.SetXY(18, sigY+8)
	pdf.CellFormat(80, 5, "Authorized Signature", "", 0, "L", false, 0, "")
	pdf.SetXY(110, sigY+8)
	pdf.CellFormat(82, 5, "Client Signature", "", 1, "L", false, 0, "")

	path := filepath.Join(r.outputDir, fmt.Sprintf("Contract_%s.pdf", sanitizeFirm(firmName)))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write contract pdf: %w", err)
	}
	log.Printf("[Documents] Rendered contract for %s -> %s", firmName, path)
	return path, nil
}

func sanitizeFirm(firmName string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, firmName)
}

func dollars(amount int64) string {
	return "$" + amountCell(amount)
}

func amountCell(amount int64) string {
	return fmt.Sprintf("%s.00", groupThousands(amount))
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
