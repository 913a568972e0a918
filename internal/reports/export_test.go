package reports_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/reports"
)

func TestMovementsXLSX(t *testing.T) {
	entries := []movement.Entry{
		{
			Movement: movement.Movement{
				ID:        2,
				Type:      movement.TypeOut,
				Qty:       3,
				Note:      "servis rutin",
				CreatedAt: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			},
			SparepartSKU:      "SP-0001",
			SparepartName:     "Oli Mesin",
			SparepartCategory: "Pelumas",
			CreatedByUsername: "karyawan",
			CreatedByName:     "User Karyawan",
		},
		{
			Movement: movement.Movement{
				ID:        1,
				Type:      movement.TypeIn,
				Qty:       10,
				CreatedAt: time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC),
			},
			SparepartSKU:  "SP-0001",
			SparepartName: "Oli Mesin",
		},
	}

	data, err := reports.MovementsXLSX(entries)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	got, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "id", got)

	got, err = f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "OUT", got)

	got, err = f.GetCellValue(sheet, "E3")
	require.NoError(t, err)
	assert.Equal(t, "SP-0001", got)

	got, err = f.GetCellValue(sheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "servis rutin", got)
}

func TestMovementsXLSX_Empty(t *testing.T) {
	data, err := reports.MovementsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
