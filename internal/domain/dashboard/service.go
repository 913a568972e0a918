// Package dashboard composes the read-side counters the landing view
// shows: catalog size, critical-stock count and today's IN/OUT totals.
package dashboard

import (
	"context"
	"time"

	"github.com/gudangpro/inventory/internal/domain/auth"
	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
)

type Summary struct {
	Date            time.Time
	TotalSpareparts int64
	CriticalCount   int64
	InQty           int64
	OutQty          int64
}

type Service struct {
	parts sparepart.Store
	moves movement.Store
	loc   *time.Location
}

func NewService(parts sparepart.Store, moves movement.Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{parts: parts, moves: moves, loc: loc}
}

// Summary aggregates the dashboard numbers for one calendar day.
// A zero day means "today" in the configured timezone.
func (s *Service) Summary(ctx context.Context, p auth.Principal, day time.Time) (*Summary, error) {
	if !p.Present() {
		return nil, errs.ErrUnauthorized
	}
	if !auth.CanViewDashboard(p.Role) {
		return nil, errs.ErrForbidden
	}

	if day.IsZero() {
		day = time.Now().In(s.loc)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	// Filter.To is date-inclusive, so From == To covers exactly one day.
	dayFilter := movement.Filter{From: start, To: start}

	out := Summary{Date: start}
	var err error
	if out.TotalSpareparts, err = s.parts.Count(ctx); err != nil {
		return nil, err
	}
	if out.CriticalCount, err = s.parts.CountCritical(ctx); err != nil {
		return nil, err
	}

	dayFilter.Type = movement.TypeIn
	if out.InQty, err = s.moves.SumQty(ctx, dayFilter); err != nil {
		return nil, err
	}
	dayFilter.Type = movement.TypeOut
	if out.OutQty, err = s.moves.SumQty(ctx, dayFilter); err != nil {
		return nil, err
	}
	return &out, nil
}
