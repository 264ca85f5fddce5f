// Package memory keeps pending transitions in process memory. It serves a
// single instance deployment and tests; holds are lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/pkg/errs"
)

type holdKey struct {
	orderID kernel.UUID
	group   order.GroupRef
}

// Store implements ports.HoldStore on a mutex guarded map.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	holds map[holdKey]order.PendingTransition
}

type Option func(*Store)

// WithClock replaces time.Now for expiry checks in Get and ListByOrder.
// A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		ttl:   ttl,
		now:   time.Now,
		holds: make(map[holdKey]order.PendingTransition),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Put(_ context.Context, hold order.PendingTransition) error {
	if err := hold.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.holds[holdKey{orderID: hold.OrderID(), group: hold.Group()}] = hold
	return nil
}

func (s *Store) Get(_ context.Context, orderID kernel.UUID, group order.GroupRef) (order.PendingTransition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := holdKey{orderID: orderID, group: group}
	hold, ok := s.holds[key]
	if !ok || hold.IsExpired(s.now(), s.ttl) {
		return order.PendingTransition{}, errs.NewObjectNotFoundError("pending transition", group.String())
	}
	return hold, nil
}

func (s *Store) Delete(_ context.Context, orderID kernel.UUID, group order.GroupRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.holds, holdKey{orderID: orderID, group: group})
	return nil
}

// ListByOrder returns live holds sorted by group.
func (s *Store) ListByOrder(_ context.Context, orderID kernel.UUID) ([]order.PendingTransition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]order.PendingTransition, 0)
	for key, hold := range s.holds {
		if key.orderID.IsEqual(orderID) && !hold.IsExpired(now, s.ttl) {
			out = append(out, hold)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Group().String() < out[j].Group().String()
	})
	return out, nil
}

func (s *Store) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, hold := range s.holds {
		if hold.IsExpired(now, s.ttl) {
			delete(s.holds, key)
			removed++
		}
	}
	return removed, nil
}
