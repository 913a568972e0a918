// Package memory is an in-memory implementation of the sparepart and
// movement stores. It backs the service tests; the semantics mirror the
// Postgres repos, including the serialization of balance updates.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gudangpro/inventory/internal/domain/errs"
	"github.com/gudangpro/inventory/internal/domain/movement"
	"github.com/gudangpro/inventory/internal/domain/sparepart"
	"github.com/gudangpro/inventory/internal/domain/users"
)

// Store holds both tables behind one mutex, so a movement's check-then-
// write is atomic the same way the row lock makes it in Postgres. The
// sparepart and movement store interfaces are served by views over it.
type Store struct {
	mu sync.Mutex

	// Now is the clock; tests override it to pin timestamps.
	Now func() time.Time

	parts  map[int64]sparepart.Sparepart
	moves  []movement.Entry
	users  map[int64]users.User
	nextID int64
}

func New() *Store {
	return &Store{
		Now:   time.Now,
		parts: make(map[int64]sparepart.Sparepart),
		users: make(map[int64]users.User),
	}
}

// Spareparts returns the catalog view of the store.
func (s *Store) Spareparts() sparepart.Store { return sparepartStore{s} }

// Movements returns the ledger view of the store.
func (s *Store) Movements() movement.Store { return movementStore{s} }

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

/* users: seed helper + lookup for the auth middleware */

func (s *Store) AddUser(u users.User) users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	u.CreatedAt = s.Now()
	u.UpdatedAt = u.CreatedAt
	s.users[u.ID] = u
	return u
}

func (s *Store) GetByID(ctx context.Context, id int64) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", errs.ErrNotFound, id)
	}
	return &u, nil
}

/* sparepart.Store */

type sparepartStore struct{ s *Store }

func (v sparepartStore) Create(ctx context.Context, in sparepart.CreateInput) (*sparepart.Sparepart, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.parts {
		if p.SKU == in.SKU {
			return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateSKU, in.SKU)
		}
	}

	now := s.Now()
	p := sparepart.Sparepart{
		ID:        s.id(),
		SKU:       in.SKU,
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		RackLoc:   in.RackLoc,
		MinStock:  in.MinStock,
		StockQty:  in.StockQty,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.parts[p.ID] = p
	return &p, nil
}

func (v sparepartStore) Update(ctx context.Context, id int64, in sparepart.UpdateInput) (*sparepart.Sparepart, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parts[id]
	if !ok {
		return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
	}
	if in.SKU != nil {
		for _, other := range s.parts {
			if other.ID != id && other.SKU == *in.SKU {
				return nil, fmt.Errorf("%w: %s", errs.ErrDuplicateSKU, *in.SKU)
			}
		}
		p.SKU = *in.SKU
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.RackLoc != nil {
		p.RackLoc = *in.RackLoc
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.StockQty != nil {
		p.StockQty = *in.StockQty
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
	p.UpdatedAt = s.Now()
	s.parts[id] = p
	return &p, nil
}

func (v sparepartStore) Delete(ctx context.Context, id int64) error {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.parts[id]; !ok {
		return fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
	}
	for _, e := range s.moves {
		if e.SparepartID == id {
			return fmt.Errorf("%w: sparepart %d", errs.ErrHasMovements, id)
		}
	}
	delete(s.parts, id)
	return nil
}

func (v sparepartStore) GetByID(ctx context.Context, id int64) (*sparepart.Sparepart, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parts[id]
	if !ok {
		return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, id)
	}
	return &p, nil
}

func (v sparepartStore) List(ctx context.Context, search string, limit int) ([]sparepart.Sparepart, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 || limit > sparepart.ListLimit {
		limit = sparepart.ListLimit
	}
	search = strings.ToLower(strings.TrimSpace(search))

	var out []sparepart.Sparepart
	for _, p := range s.parts {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.SKU), search) &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Category), search) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v sparepartStore) Count(ctx context.Context) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return int64(len(v.s.parts)), nil
}

func (v sparepartStore) CountCritical(ctx context.Context) (int64, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var n int64
	for _, p := range v.s.parts {
		if p.Critical() {
			n++
		}
	}
	return n, nil
}

/* movement.Store */

type movementStore struct{ s *Store }

func (v movementStore) Create(ctx context.Context, m movement.Movement) (*movement.Result, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parts[m.SparepartID]
	if !ok {
		return nil, fmt.Errorf("%w: sparepart %d", errs.ErrNotFound, m.SparepartID)
	}
	if m.Type == movement.TypeOut && m.Qty > p.StockQty {
		return nil, &errs.InsufficientStockError{
			SparepartID: m.SparepartID,
			Available:   p.StockQty,
			Requested:   m.Qty,
		}
	}

	m.ID = s.id()
	m.CreatedAt = s.Now()
	p.StockQty += m.Delta()
	p.UpdatedAt = m.CreatedAt
	s.parts[m.SparepartID] = p

	e := movement.Entry{
		Movement:          m,
		SparepartSKU:      p.SKU,
		SparepartName:     p.Name,
		SparepartCategory: p.Category,
	}
	if u, ok := s.users[m.CreatedByID]; ok {
		e.CreatedByUsername = u.Username
		e.CreatedByName = u.Name
	}
	s.moves = append(s.moves, e)

	return &movement.Result{
		Movement: m,
		SKU:      p.SKU,
		Name:     p.Name,
		StockQty: p.StockQty,
		MinStock: p.MinStock,
	}, nil
}

func matches(e movement.Entry, f movement.Filter) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && e.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !e.CreatedAt.Before(f.To.Add(24*time.Hour)) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(f.Search)); s != "" {
		if !strings.Contains(strings.ToLower(e.SparepartSKU), s) &&
			!strings.Contains(strings.ToLower(e.SparepartName), s) &&
			!strings.Contains(strings.ToLower(e.SparepartCategory), s) &&
			!strings.Contains(strings.ToLower(e.Note), s) {
			return false
		}
	}
	return true
}

func (v movementStore) List(ctx context.Context, f movement.Filter) ([]movement.Entry, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := f.Limit
	if limit <= 0 || limit > movement.ListLimit {
		limit = movement.ListLimit
	}

	var out []movement.Entry
	for _, e := range s.moves {
		if matches(e, f) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v movementStore) SumQty(ctx context.Context, f movement.Filter) (int64, error) {
	s := v.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum int64
	for _, e := range s.moves {
		if matches(e, f) {
			sum += e.Qty
		}
	}
	return sum, nil
}
