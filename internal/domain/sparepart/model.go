package sparepart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gudangpro/inventory/internal/domain/errs"
)

// DefaultUnit is applied when a part is created without a unit label.
const DefaultUnit = "pcs"

// ListLimit caps catalog listings so a search never turns into an
// unbounded scan.
const ListLimit = 200

type Sparepart struct {
	ID        int64
	SKU       string
	Name      string
	Category  string
	Unit      string
	RackLoc   string
	MinStock  int64
	StockQty  int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Critical reports whether the part is at or below its reorder threshold.
func (s Sparepart) Critical() bool { return s.StockQty <= s.MinStock }

// CreateInput carries the fields for a new catalog entry. StockQty is an
// opening balance, not a derived sum; no synthetic movement is emitted.
type CreateInput struct {
	SKU      string
	Name     string
	Category string
	Unit     string
	RackLoc  string
	MinStock int64
	StockQty int64
}

// Normalize trims the inputs and applies defaults, then validates.
// All field rules live here so every write path enforces the same ones.
func (in *CreateInput) Normalize() error {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.RackLoc = strings.TrimSpace(in.RackLoc)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Unit == "" {
		in.Unit = DefaultUnit
	}

	switch {
	case len(in.SKU) < 3:
		return fmt.Errorf("%w: sku must be at least 3 characters", errs.ErrInvalidInput)
	case len(in.Name) < 2:
		return fmt.Errorf("%w: name must be at least 2 characters", errs.ErrInvalidInput)
	case in.MinStock < 0:
		return fmt.Errorf("%w: minStock must be >= 0", errs.ErrInvalidInput)
	case in.StockQty < 0:
		return fmt.Errorf("%w: stockQty must be >= 0", errs.ErrInvalidInput)
	}
	return nil
}

// UpdateInput is a partial update; nil fields are left untouched.
// A non-nil StockQty is a manual override outside the ledger.
type UpdateInput struct {
	SKU      *string
	Name     *string
	Category *string
	Unit     *string
	RackLoc  *string
	MinStock *int64
	StockQty *int64
	Active   *bool
}

func (in *UpdateInput) Normalize() error {
	trim := func(p *string) {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	trim(in.SKU)
	trim(in.Name)
	trim(in.Category)
	trim(in.RackLoc)
	trim(in.Unit)
	if in.Unit != nil && *in.Unit == "" {
		*in.Unit = DefaultUnit
	}

	switch {
	case in.SKU != nil && len(*in.SKU) < 3:
		return fmt.Errorf("%w: sku must be at least 3 characters", errs.ErrInvalidInput)
	case in.Name != nil && len(*in.Name) < 2:
		return fmt.Errorf("%w: name must be at least 2 characters", errs.ErrInvalidInput)
	case in.MinStock != nil && *in.MinStock < 0:
		return fmt.Errorf("%w: minStock must be >= 0", errs.ErrInvalidInput)
	case in.StockQty != nil && *in.StockQty < 0:
		return fmt.Errorf("%w: stockQty must be >= 0", errs.ErrInvalidInput)
	}
	return nil
}

// Empty reports whether the update touches nothing.
func (in UpdateInput) Empty() bool {
	return in.SKU == nil && in.Name == nil && in.Category == nil &&
		in.Unit == nil && in.RackLoc == nil && in.MinStock == nil &&
		in.StockQty == nil && in.Active == nil
}

// Store is the catalog persistence boundary. The pgx implementation lives
// in this package; the in-memory one under internal/store/memory backs the
// service tests.
type Store interface {
	Create(ctx context.Context, in CreateInput) (*Sparepart, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*Sparepart, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Sparepart, error)
	List(ctx context.Context, search string, limit int) ([]Sparepart, error)
	Count(ctx context.Context) (int64, error)
	CountCritical(ctx context.Context) (int64, error)
}
