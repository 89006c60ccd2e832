package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/nurpe/contractor-form/internal/model"
)

// Letters that carry no combining mark and so survive NFD untouched.
var strokeReplacer = strings.NewReplacer("ł", "l", "Ł", "L")

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a single page contractor card. Core fonts are cp1252, so
// Polish diacritics are folded to their base letters.
func (g *Generator) Generate(contractor model.Contractor) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetTitle("Karta kontrahenta", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string {
		return tr(fold(s))
	}

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, text("Karta kontrahenta"), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	pdf.CellFormat(0, 6, contractor.ID.String(), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	rows := [][2]string{
		{"Imię", safeValue(contractor.FirstName)},
		{"Nazwisko", safeValue(contractor.LastName)},
		{"Typ", safeValue(string(contractor.Type))},
		{contractor.Type.IDLabel(), safeValue(contractor.IDNumber)},
		{"Zdjęcie", safeValue(contractor.Image)},
		{"Utworzono", formatDate(contractor.CreatedAt)},
	}
	for _, row := range rows {
		drawRow(pdf, g.fontName, text(row[0]), text(row[1]))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contractor card: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRow(pdf *gofpdf.Fpdf, fontName, label, value string) {
	pdf.SetFont(fontName, "B", 11)
	pdf.CellFormat(50, 8, label, "1", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
}

func fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	out, _, err := transform.String(t, strokeReplacer.Replace(s))
	if err != nil {
		return s
	}
	return out
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006 15:04")
}
