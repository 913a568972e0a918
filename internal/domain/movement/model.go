package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/gudangpro/inventory/internal/domain/errs"
)

type Type string

const (
	TypeIn  Type = "IN"
	TypeOut Type = "OUT"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeIn, TypeOut:
		return Type(s), nil
	}
	return "", fmt.Errorf("%w: type must be IN or OUT", errs.ErrInvalidInput)
}

// Movement is one append-only ledger entry. Rows are never updated or
// deleted once committed; the set of them is the audit trail.
type Movement struct {
	ID          int64
	SparepartID int64
	Type        Type
	Qty         int64
	Note        string
	CreatedByID int64
	CreatedAt   time.Time
}

// Delta is the signed effect on the part's balance.
func (m Movement) Delta() int64 {
	if m.Type == TypeOut {
		return -m.Qty
	}
	return m.Qty
}

// Entry is a ledger row joined with the sparepart and creator fields the
// history views display.
type Entry struct {
	Movement
	SparepartSKU      string
	SparepartName     string
	SparepartCategory string
	CreatedByUsername string
	CreatedByName     string
}

// Result reports a committed movement together with the balance it
// produced, so callers can react (critical-stock alerts) without a
// second read.
type Result struct {
	Movement Movement
	SKU      string
	Name     string
	StockQty int64
	MinStock int64
}

// Critical reports whether the committed movement left the part at or
// below its reorder threshold.
func (r Result) Critical() bool { return r.StockQty <= r.MinStock }

// ListLimit caps history queries.
const ListLimit = 200

// Filter narrows history listings and sums. Zero values mean "no
// restriction"; To is an inclusive date, extended to end of day.
type Filter struct {
	Search string
	Type   Type
	From   time.Time
	To     time.Time
	Limit  int
}

// Store is the ledger persistence boundary. Create must be atomic: the
// stock check, the ledger append and the balance update either all
// happen or none do, serialized per sparepart against concurrent writers.
type Store interface {
	Create(ctx context.Context, m Movement) (*Result, error)
	List(ctx context.Context, f Filter) ([]Entry, error)
	SumQty(ctx context.Context, f Filter) (int64, error)
}
