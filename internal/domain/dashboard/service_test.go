package dashboard_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/dashboard"
	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
	"github.com/gudangpro/inventory/internal/store/memory"
)

func TestDashboardSummary(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	admin := auth.Principal{ID: 1, Username: "admin", Role: auth.RoleAdminGudang}

	parts := store.Spareparts()
	low, err := parts.Create(ctx, sparepart.CreateInput{SKU: "SP-0001", Name: "Oli Mesin", MinStock: 5, StockQty: 5})
	require.NoError(t, err)
	ok, err := parts.Create(ctx, sparepart.CreateInput{SKU: "SP-0002", Name: "Kampas Rem", MinStock: 2, StockQty: 30})
	require.NoError(t, err)

	moveSvc := movement.NewService(store.Movements(), nil, slog.Default())

	today := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	yesterday := today.Add(-24 * time.Hour)

	store.Now = func() time.Time { return yesterday }
	_, err = moveSvc.Create(ctx, admin, movement.CreateInput{SparepartID: ok.ID, Type: "IN", Qty: 100})
	require.NoError(t, err)

	store.Now = func() time.Time { return today }
	_, err = moveSvc.Create(ctx, admin, movement.CreateInput{SparepartID: ok.ID, Type: "IN", Qty: 8})
	require.NoError(t, err)
	_, err = moveSvc.Create(ctx, admin, movement.CreateInput{SparepartID: low.ID, Type: "OUT", Qty: 3})
	require.NoError(t, err)

	svc := dashboard.NewService(parts, store.Movements(), time.UTC)

	sum, err := svc.Summary(ctx, admin, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.TotalSpareparts)
	assert.Equal(t, int64(1), sum.CriticalCount, "SP-0001 dropped to 2 <= 5")
	assert.Equal(t, int64(8), sum.InQty, "yesterday's IN excluded")
	assert.Equal(t, int64(3), sum.OutQty)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), sum.Date)
}

func TestDashboardSummary_Authorization(t *testing.T) {
	store := memory.New()
	svc := dashboard.NewService(store.Spareparts(), store.Movements(), time.UTC)
	ctx := context.Background()

	_, err := svc.Summary(ctx, auth.Principal{}, time.Time{})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	// Kurir may view the dashboard even though it cannot write.
	kurir := auth.Principal{ID: 3, Username: "kurir", Role: auth.RoleKurir}
	sum, err := svc.Summary(ctx, kurir, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, sum.TotalSpareparts)
}
