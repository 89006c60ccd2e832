package excel

import (
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contractor-form/internal/model"
)

const sheetName = "Kontrahenci"

var headers = []string{
	"ID",
	"Imię",
	"Nazwisko",
	"Typ",
	"Numer identyfikacyjny",
	"Rodzaj numeru",
	"Zdjęcie",
	"Utworzono",
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(contractors []model.Contractor) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, contractor := range contractors {
		row := []interface{}{
			contractor.ID.String(),
			contractor.FirstName,
			contractor.LastName,
			string(contractor.Type),
			contractor.IDNumber,
			contractor.Type.IDLabel(),
			contractor.Image,
			formatDateTime(contractor.CreatedAt),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		// Identifiers stay strings so leading zeros survive.
		if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = file.SetColWidth(sheetName, "A", "A", 38)
	_ = file.SetColWidth(sheetName, "B", "C", 20)
	_ = file.SetColWidth(sheetName, "D", "D", 10)
	_ = file.SetColWidth(sheetName, "E", "F", 22)
	_ = file.SetColWidth(sheetName, "G", "G", 48)
	_ = file.SetColWidth(sheetName, "H", "H", 20)

	if err := file.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
