package history

import (
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Numero", "Tipo", "Cliente", "Fecha", "Mes", "Total"}

// ExportXLSX serializes the full list to a spreadsheet ("Historial" sheet).
// An empty list is a no-op: it returns nil bytes and writes nothing.
func ExportXLSX(entries []Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Historial"
	f.SetSheetName("Sheet1", sheet)

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, e := range entries {
		values := []any{e.Numero, e.DocumentType(), e.Cliente, e.Fecha, e.BillingMonth(), e.Total}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
