package sparepart

import (
	"context"
	"log/slog"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/errs"
)

// Service gates catalog writes behind the role policy. Reads are open to
// any authenticated principal.
type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) authorize(p auth.Principal, check func(auth.Role) bool) error {
	if !p.Present() {
		return errs.ErrUnauthorized
	}
	if !check(p.Role) {
		return errs.ErrForbidden
	}
	return nil
}

func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateInput) (*Sparepart, error) {
	if err := s.authorize(p, auth.CanManageSparepart); err != nil {
		return nil, err
	}
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	sp, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("sparepart created", "id", sp.ID, "sku", sp.SKU, "by", p.Username)
	return sp, nil
}

func (s *Service) Update(ctx context.Context, p auth.Principal, id int64, in UpdateInput) (*Sparepart, error) {
	if err := s.authorize(p, auth.CanManageSparepart); err != nil {
		return nil, err
	}
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	if in.Empty() {
		return s.store.GetByID(ctx, id)
	}

	// Writing stock_qty here bypasses the ledger. Allowed as an
	// administrative correction, but it leaves the movement sum and the
	// balance out of agreement until reconciled.
	if in.StockQty != nil {
		s.log.Warn("manual stock override", "sparepart_id", id, "stock_qty", *in.StockQty, "by", p.Username)
	}

	return s.store.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, p auth.Principal, id int64) error {
	if err := s.authorize(p, auth.CanManageSparepart); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("sparepart deleted", "id", id, "by", p.Username)
	return nil
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id int64) (*Sparepart, error) {
	if err := s.authorize(p, auth.CanViewDashboard); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, p auth.Principal, search string) ([]Sparepart, error) {
	if err := s.authorize(p, auth.CanViewDashboard); err != nil {
		return nil, err
	}
	return s.store.List(ctx, search, ListLimit)
}
