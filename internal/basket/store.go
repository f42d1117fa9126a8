package basket

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/architechlabs/basket-api/internal/pricing"
)

// ErrNotFound indicates the requested basket could not be located.
var ErrNotFound = errors.New("basket not found")

// Factory builds an empty basket wired to the configured catalog, offer and
// delivery rules.
type Factory func() (*Basket, error)

// Snapshot combines a basket's identity, contents and priced breakdown.
type Snapshot struct {
	ID     uuid.UUID
	Items  []pricing.LineItem
	Totals Totals
}

type entry struct {
	basket    *Basket
	touchedAt time.Time
}

// Store keeps server-side baskets in memory, keyed by id. It provides the
// external synchronization baskets themselves do not: all access goes through
// its mutex. Idle baskets expire after the configured TTL.
type Store struct {
	TTL     time.Duration
	Now     func() time.Time
	Factory Factory

	mu      sync.Mutex
	baskets map[uuid.UUID]*entry
}

// NewStore constructs a Store for the given factory.
func NewStore(factory Factory, ttl time.Duration) *Store {
	return &Store{
		TTL:     ttl,
		Factory: factory,
		baskets: make(map[uuid.UUID]*entry),
	}
}

func (s *Store) ttl() time.Duration {
	if s == nil || s.TTL <= 0 {
		return 30 * time.Minute
	}
	return s.TTL
}

func (s *Store) now() time.Time {
	if s != nil && s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create builds a new empty basket and returns its id.
func (s *Store) Create() (uuid.UUID, error) {
	if s == nil || s.Factory == nil {
		return uuid.Nil, errors.New("basket store not configured")
	}

	b, err := s.Factory()
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.baskets[id] = &entry{basket: b, touchedAt: s.now()}
	return id, nil
}

// AddItem adds one unit of the coded product to the identified basket.
func (s *Store) AddItem(id uuid.UUID, code string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.baskets[id]
	if !ok || s.expired(e) {
		delete(s.baskets, id)
		return Snapshot{}, ErrNotFound
	}

	if err := e.basket.Add(code); err != nil {
		return Snapshot{}, err
	}
	e.touchedAt = s.now()
	return s.snapshot(id, e)
}

// Get returns the identified basket's current snapshot.
func (s *Store) Get(id uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.baskets[id]
	if !ok || s.expired(e) {
		delete(s.baskets, id)
		return Snapshot{}, ErrNotFound
	}
	e.touchedAt = s.now()
	return s.snapshot(id, e)
}

// Prune drops baskets idle for longer than the TTL and reports how many went.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.baskets {
		if s.expired(e) {
			delete(s.baskets, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live baskets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.baskets)
}

func (s *Store) expired(e *entry) bool {
	return s.now().Sub(e.touchedAt) > s.ttl()
}

func (s *Store) snapshot(id uuid.UUID, e *entry) (Snapshot, error) {
	totals, err := e.basket.Totals()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ID: id, Items: e.basket.Items(), Totals: totals}, nil
}
