package sparepart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gudangpro/inventory/internal/domain/errs"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const columns = `id, sku, name, category, unit, rack_loc, min_stock, stock_qty, active, created_at, updated_at`

func scanOne(row pgx.Row) (*Sparepart, error) {
	var s Sparepart
	err := row.Scan(&s.ID, &s.SKU, &s.Name, &s.Category, &s.Unit, &s.RackLoc,
		&s.MinStock, &s.StockQty, &s.Active, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, in CreateInput) (*Sparepart, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO spareparts (sku, name, category, unit, rack_loc, min_stock, stock_qty, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,TRUE)
		RETURNING `+columns,
		in.SKU, in.Name, in.Category, in.Unit, in.RackLoc, in.MinStock, in.StockQty)

	s, err := scanOne(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateSKU, in.SKU)
		}
		return nil, err
	}
	return s, nil
}

func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) (*Sparepart, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.SKU != nil {
		add("sku", *in.SKU)
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Unit != nil {
		add("unit", *in.Unit)
	}
	if in.RackLoc != nil {
		add("rack_loc", *in.RackLoc)
	}
	if in.MinStock != nil {
		add("min_stock", *in.MinStock)
	}
	if in.StockQty != nil {
		add("stock_qty", *in.StockQty)
	}
	if in.Active != nil {
		add("active", *in.Active)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE spareparts SET `+strings.Join(set, ", ")+`
		WHERE id = $1
		RETURNING `+columns, args...)

	s, err := scanOne(row)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
		case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
			sku := ""
			if in.SKU != nil {
				sku = *in.SKU
			}
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateSKU, sku)
		}
		return nil, err
	}
	return s, nil
}

// Delete removes a catalog entry. Parts with ledger history are never
// deleted: the movement rows are the audit trail, so the delete is
// rejected instead of cascading.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var hasMoves bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM stock_movements WHERE sparepart_id = $1)
	`, id).Scan(&hasMoves); err != nil {
		return err
	}
	if hasMoves {
		return fmt.Errorf("%w: sparepart %d", errs.ErrHasMovements, id)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM spareparts WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgFKViolation {
			return fmt.Errorf("%w: sparepart %d", errs.ErrHasMovements, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
	}
	return tx.Commit(ctx)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Sparepart, error) {
	s, err := scanOne(r.pool.QueryRow(ctx, `
		SELECT `+columns+` FROM spareparts WHERE id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
	}
	return s, err
}

// List returns parts ordered by name, optionally filtered by a
// case-insensitive substring over sku, name and category.
func (r *Repo) List(ctx context.Context, search string, limit int) ([]Sparepart, error) {
	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}

	q := `SELECT ` + columns + ` FROM spareparts`
	args := []any{}
	if search = strings.TrimSpace(search); search != "" {
		q += ` WHERE sku ILIKE $1 OR name ILIKE $1 OR category ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += fmt.Sprintf(` ORDER BY name LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sparepart
	for rows.Next() {
		s, err := scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM spareparts`).Scan(&n)
	return n, err
}

func (r *Repo) CountCritical(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM spareparts WHERE stock_qty <= min_stock`).Scan(&n)
	return n, err
}
