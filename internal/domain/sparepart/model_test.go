package sparepart_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
)

func TestCreateInput_Normalize(t *testing.T) {
	in := sparepart.CreateInput{
		SKU:  "  SP-0001 ",
		Name: " Oli Mesin ",
	}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "SP-0001", in.SKU)
	assert.Equal(t, "Oli Mesin", in.Name)
	assert.Equal(t, sparepart.DefaultUnit, in.Unit, "unit defaults when omitted")
}

func TestCreateInput_Normalize_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   sparepart.CreateInput
	}{
		{"short sku", sparepart.CreateInput{SKU: "SP", Name: "Oli"}},
		{"whitespace sku", sparepart.CreateInput{SKU: "   ", Name: "Oli"}},
		{"short name", sparepart.CreateInput{SKU: "SP-0001", Name: "O"}},
		{"negative minStock", sparepart.CreateInput{SKU: "SP-0001", Name: "Oli", MinStock: -1}},
		{"negative stockQty", sparepart.CreateInput{SKU: "SP-0001", Name: "Oli", StockQty: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Normalize()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidInput))
		})
	}
}

func TestUpdateInput_Normalize(t *testing.T) {
	unit := "  "
	sku := "SP-0002"
	in := sparepart.UpdateInput{SKU: &sku, Unit: &unit}
	require.NoError(t, in.Normalize())
	assert.Equal(t, sparepart.DefaultUnit, *in.Unit, "blank unit falls back to default")
	assert.False(t, in.Empty())

	short := "AB"
	bad := sparepart.UpdateInput{SKU: &short}
	assert.ErrorIs(t, bad.Normalize(), errs.ErrInvalidInput)

	assert.True(t, sparepart.UpdateInput{}.Empty())
}

func TestCritical(t *testing.T) {
	assert.True(t, sparepart.Sparepart{StockQty: 5, MinStock: 5}.Critical(), "at threshold counts as critical")
	assert.True(t, sparepart.Sparepart{StockQty: 2, MinStock: 5}.Critical())
	assert.False(t, sparepart.Sparepart{StockQty: 6, MinStock: 5}.Critical())
}
