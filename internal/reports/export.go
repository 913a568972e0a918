// Package reports renders read-model data as spreadsheet files for
// download.
package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/gudangpro/inventory/internal/domain/movement"
)

// MovementsXLSX writes the given ledger entries into an xlsx workbook,
// one row per movement, newest first as supplied.
func MovementsXLSX(entries []movement.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id", "created_at", "type", "qty",
		"sku", "sparepart", "category", "note",
		"created_by", "created_by_name",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			string(e.Type),
			e.Qty,
			e.SparepartSKU,
			e.SparepartName,
			e.SparepartCategory,
			e.Note,
			e.CreatedByUsername,
			e.CreatedByName,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
