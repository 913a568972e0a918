package sparepart_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
	"github.com/gudangpro/inventory/internal/store/memory"
)

var (
	admin    = auth.Principal{ID: 1, Username: "admin", Role: auth.RoleAdminGudang}
	karyawan = auth.Principal{ID: 2, Username: "karyawan", Role: auth.RoleKaryawan}
	kurir    = auth.Principal{ID: 3, Username: "kurir", Role: auth.RoleKurir}
)

func newCatalog(t *testing.T) (*sparepart.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := sparepart.NewService(store.Spareparts(), slog.Default())
	return svc, store
}

func TestCatalog_AuthorizationGating(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()
	in := sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Mesin"}

	_, err := svc.Create(ctx, karyawan, in)
	assert.ErrorIs(t, err, errs.ErrForbidden, "karyawan may not manage the catalog")

	_, err = svc.Create(ctx, kurir, in)
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.Create(ctx, auth.Principal{}, in)
	assert.ErrorIs(t, err, errs.ErrUnauthorized, "missing principal is unauthorized, not forbidden")

	sp, err := svc.Create(ctx, admin, in)
	require.NoError(t, err)
	assert.NotZero(t, sp.ID)
}

func TestCatalog_DuplicateSKU(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin, sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Mesin"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin, sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Lain"})
	assert.ErrorIs(t, err, errs.ErrDuplicateSKU)

	items, err := svc.List(ctx, admin, "SP-0001")
	require.NoError(t, err)
	assert.Len(t, items, 1, "catalog still holds exactly one row with that sku")
}

func TestCatalog_UpdatePartial(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Mesin", MinStock: 5, StockQty: 20})
	require.NoError(t, err)

	name := "Oli Mesin 10W-40"
	updated, err := svc.Update(ctx, admin, sp.ID, sparepart.UpdateInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, int64(20), updated.StockQty, "untouched fields stay")

	// Manual stock override: allowed, bypasses the ledger.
	override := int64(99)
	updated, err = svc.Update(ctx, admin, sp.ID, sparepart.UpdateInput{StockQty: &override})
	require.NoError(t, err)
	assert.Equal(t, int64(99), updated.StockQty)

	_, err = svc.Update(ctx, admin, 12345, sparepart.UpdateInput{Name: &name})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCatalog_DeleteBlockedByMovements(t *testing.T) {
	svc, store := newCatalog(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Mesin", StockQty: 10})
	require.NoError(t, err)

	_, err = store.Movements().Create(ctx, movement.Movement{
		SparepartID: sp.ID, Type: movement.TypeOut, Qty: 1, CreatedByID: admin.ID,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, admin, sp.ID)
	assert.ErrorIs(t, err, errs.ErrHasMovements, "audit trail blocks deletion")

	_, err = svc.Get(ctx, admin, sp.ID)
	assert.NoError(t, err, "part still present after rejected delete")
}

func TestCatalog_DeleteWithoutHistory(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin, sparepart.CreateInput{SKU: "SP-0002", Name: "Kampas Rem"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, sp.ID))

	_, err = svc.Get(ctx, admin, sp.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, admin, sp.ID), errs.ErrNotFound)
}

func TestCatalog_ListSearch(t *testing.T) {
	svc, _ := newCatalog(t)
	ctx := context.Background()

	seed := []sparepart.CreateInput{
		{SKU: "SP-0001", Name: "Oli Mesin", Category: "Pelumas"},
		{SKU: "SP-0002", Name: "Kampas Rem", Category: "Rem"},
		{SKU: "SP-0003", Name: "Busi", Category: "Pengapian"},
	}
	for _, in := range seed {
		_, err := svc.Create(ctx, admin, in)
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, kurir, "")
	require.NoError(t, err, "every role may read")
	require.Len(t, items, 3)
	assert.Equal(t, "Busi", items[0].Name, "ordered by name")

	items, err = svc.List(ctx, admin, "rem")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "SP-0002", items[0].SKU, "case-insensitive match on name/category")

	items, err = svc.List(ctx, admin, "sp-000")
	require.NoError(t, err)
	assert.Len(t, items, 3, "sku substring matches all")
}
