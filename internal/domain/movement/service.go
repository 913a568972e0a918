package movement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/infra/metrics"
)

// notifyTimeout bounds a single alert delivery attempt.
const notifyTimeout = 10 * time.Second

// Notifier receives out-of-band alerts about committed movements.
// Implementations must not affect the ledger outcome.
type Notifier interface {
	CriticalStock(ctx context.Context, sku, name string, stockQty, minStock int64)
}

// CreateInput is one movement request as it arrives from the boundary.
type CreateInput struct {
	SparepartID int64
	Type        string
	Qty         int64
	Note        string
}

type Service struct {
	store    Store
	notifier Notifier // may be nil
	log      *slog.Logger
}

func NewService(store Store, notifier Notifier, log *slog.Logger) *Service {
	return &Service{store: store, notifier: notifier, log: log}
}

// Create validates and commits one stock movement. The store call is the
// atomic unit; everything before it has no side effects, so a rejected
// request leaves the ledger and the balance untouched.
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Result, error) {
	if !p.Present() {
		metrics.MovementsRejected.WithLabelValues("unauthorized").Inc()
		return nil, errs.ErrUnauthorized
	}
	if !auth.CanCreateMovement(p.Role) {
		metrics.MovementsRejected.WithLabelValues("forbidden").Inc()
		return nil, errs.ErrForbidden
	}

	mtype, err := ParseType(in.Type)
	if err != nil {
		metrics.MovementsRejected.WithLabelValues("invalid").Inc()
		return nil, err
	}
	if in.SparepartID <= 0 {
		metrics.MovementsRejected.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: sparepartId is required", errs.ErrInvalidInput)
	}
	if in.Qty <= 0 {
		metrics.MovementsRejected.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: qty must be > 0", errs.ErrInvalidInput)
	}

	res, err := s.store.Create(ctx, Movement{
		SparepartID: in.SparepartID,
		Type:        mtype,
		Qty:         in.Qty,
		Note:        in.Note,
		CreatedByID: p.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNotFound):
			metrics.MovementsRejected.WithLabelValues("not_found").Inc()
		case errors.Is(err, errs.ErrInsufficientStock):
			metrics.MovementsRejected.WithLabelValues("insufficient_stock").Inc()
		}
		return nil, err
	}

	metrics.MovementsCreated.WithLabelValues(string(mtype)).Inc()
	s.log.Info("movement committed",
		"sparepart", res.SKU, "type", mtype, "qty", in.Qty,
		"stock_qty", res.StockQty, "by", p.Username)

	if s.notifier != nil && res.Critical() {
		// The movement is already committed; alert delivery is out of
		// band and must not hold up the response or die with the
		// request context.
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		go func() {
			defer cancel()
			s.notifier.CriticalStock(nctx, res.SKU, res.Name, res.StockQty, res.MinStock)
		}()
	}
	return res, nil
}

// List returns the filtered movement history, open to every
// authenticated role.
func (s *Service) List(ctx context.Context, p auth.Principal, f Filter) ([]Entry, error) {
	if !p.Present() {
		return nil, errs.ErrUnauthorized
	}
	if !auth.CanViewDashboard(p.Role) {
		return nil, errs.ErrForbidden
	}
	return s.store.List(ctx, f)
}

// SumQty totals quantities over the filter; the type restriction rides
// on Filter.Type.
func (s *Service) SumQty(ctx context.Context, p auth.Principal, f Filter) (int64, error) {
	if !p.Present() {
		return 0, errs.ErrUnauthorized
	}
	if !auth.CanViewDashboard(p.Role) {
		return 0, errs.ErrForbidden
	}
	return s.store.SumQty(ctx, f)
}
