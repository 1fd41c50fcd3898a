package repository

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"storefront/models"
)

type counters struct {
	user, product, review, cartItem, order, orderItem uint
}

// memoryData is one consistent snapshot of every collection.
type memoryData struct {
	users      map[uint]models.User
	products   map[uint]models.Product
	reviews    map[uint]models.Review
	cartItems  map[uint]models.CartItem
	orders     map[uint]models.Order
	orderItems map[uint]models.OrderItem
	next       counters
}

func newMemoryData() *memoryData {
	return &memoryData{
		users:      make(map[uint]models.User),
		products:   make(map[uint]models.Product),
		reviews:    make(map[uint]models.Review),
		cartItems:  make(map[uint]models.CartItem),
		orders:     make(map[uint]models.Order),
		orderItems: make(map[uint]models.OrderItem),
	}
}

func (d *memoryData) clone() *memoryData {
	return &memoryData{
		users:      maps.Clone(d.users),
		products:   maps.Clone(d.products),
		reviews:    maps.Clone(d.reviews),
		cartItems:  maps.Clone(d.cartItems),
		orders:     maps.Clone(d.orders),
		orderItems: maps.Clone(d.orderItems),
		next:       d.next,
	}
}

// MemoryStore keeps every collection in process memory. Identifiers come from
// per-collection counters starting at 1. Values, including their slices and
// pointer fields, are copied in and out so callers never share memory with
// the store.
type MemoryStore struct {
	mu   *sync.RWMutex
	data *memoryData
	now  func() time.Time
	inTx bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mu:   &sync.RWMutex{},
		data: newMemoryData(),
		now:  time.Now,
	}
}

// RunInTx holds the store's write lock for the duration of fn and runs fn
// against a private copy of the data, which replaces the live data only when
// fn succeeds. Nested calls reuse the enclosing transaction.
func (s *MemoryStore) RunInTx(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &MemoryStore{
		mu:   &sync.RWMutex{},
		data: s.data.clone(),
		now:  s.now,
		inTx: true,
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

// sortedByID returns the values of m accepted by keep, ordered by id.
func sortedByID[T any](m map[uint]T, keep func(*T) bool) []T {
	out := make([]T, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		v := m[id]
		if keep == nil || keep(&v) {
			out = append(out, detach(v))
		}
	}
	return out
}

// detach returns v with its slices and pointer fields duplicated.
func detach[T any](v T) T {
	switch x := any(&v).(type) {
	case *models.Product:
		x.ImageURLs = slices.Clone(x.ImageURLs)
		x.Sizes = slices.Clone(x.Sizes)
		x.Colors = slices.Clone(x.Colors)
		x.Material = clonePtr(x.Material)
	case *models.Review:
		x.Comment = clonePtr(x.Comment)
	case *models.CartItem:
		x.Size, x.Color = clonePtr(x.Size), clonePtr(x.Color)
	case *models.OrderItem:
		x.Size, x.Color = clonePtr(x.Size), clonePtr(x.Color)
	}
	return v
}

func detached[T any](v T) *T {
	d := detach(v)
	return &d
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *MemoryStore) stamp() time.Time {
	return s.now().UTC()
}
