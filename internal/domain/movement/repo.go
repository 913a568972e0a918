package movement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gudangpro/inventory/internal/domain/errs"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Create commits one movement as a single transaction: lock the part row,
// check the balance, append the ledger row, update the balance. The row
// lock serializes concurrent movements on the same part, so two OUTs can
// never both pass the stock check against the same stale balance.
func (r *Repo) Create(ctx context.Context, m Movement) (*Result, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res := Result{Movement: m}
	var cur int64
	err = tx.QueryRow(ctx, `
		SELECT sku, name, stock_qty, min_stock
		FROM spareparts WHERE id = $1
		FOR UPDATE
	`, m.SparepartID).Scan(&res.SKU, &res.Name, &cur, &res.MinStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, m.SparepartID)
		}
		return nil, err
	}

	if m.Type == TypeOut && m.Qty > cur {
		return nil, &errs.InsufficientStockError{
			SparepartID: m.SparepartID,
			Available:   cur,
			Requested:   m.Qty,
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO stock_movements (sparepart_id, type, qty, note, created_by_id)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, m.SparepartID, string(m.Type), m.Qty, m.Note, m.CreatedByID).
		Scan(&res.Movement.ID, &res.Movement.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE spareparts SET stock_qty = stock_qty + $2, updated_at = now()
		WHERE id = $1
	`, m.SparepartID, m.Delta()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	res.StockQty = cur + m.Delta()
	return &res, nil
}

func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		conds = append(conds, fmt.Sprintf(
			"(sp.sku ILIKE %[1]s OR sp.name ILIKE %[1]s OR sp.category ILIKE %[1]s OR mv.note ILIKE %[1]s)", p))
	}
	if f.Type != "" {
		conds = append(conds, "mv.type = "+arg(string(f.Type)))
	}
	if !f.From.IsZero() {
		conds = append(conds, "mv.created_at >= "+arg(f.From))
	}
	if !f.To.IsZero() {
		// inclusive date: everything strictly before the next day
		conds = append(conds, "mv.created_at < "+arg(f.To.Add(24*time.Hour)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns ledger entries newest first, joined with sparepart and
// creator display fields.
func (r *Repo) List(ctx context.Context, f Filter) ([]Entry, error) {
	limit := f.Limit
	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}

	where, args := buildWhere(f)
	rows, err := r.pool.Query(ctx, `
		SELECT mv.id, mv.sparepart_id, mv.type, mv.qty, mv.note, mv.created_by_id, mv.created_at,
		       sp.sku, sp.name, sp.category,
		       u.username, u.name
		FROM stock_movements mv
		JOIN spareparts sp ON sp.id = mv.sparepart_id
		JOIN users u ON u.id = mv.created_by_id
	`+where+fmt.Sprintf(` ORDER BY mv.created_at DESC, mv.id DESC LIMIT %d`, limit), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.SparepartID, &e.Type, &e.Qty, &e.Note, &e.CreatedByID, &e.CreatedAt,
			&e.SparepartSKU, &e.SparepartName, &e.SparepartCategory,
			&e.CreatedByUsername, &e.CreatedByName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SumQty totals qty over matching movements; 0 when nothing matches.
func (r *Repo) SumQty(ctx context.Context, f Filter) (int64, error) {
	where, args := buildWhere(f)
	var sum int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(mv.qty), 0)
		FROM stock_movements mv
		JOIN spareparts sp ON sp.id = mv.sparepart_id
	`+where, args...).Scan(&sum)
	return sum, err
}
