// Package store provides the in-memory counter record store backing the
// HTTP API. Records live in process memory only and do not survive a
// restart; durable client state is the session package's concern.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/zulandar/tasbih/internal/models"
)

// Target bounds enforced at creation time.
const (
	MinTarget = 1
	MaxTarget = 10000
)

// Store is an in-memory keyed collection of counters with monotonically
// increasing ids. Ids are never reused, even after deletion. A Store is
// safe for concurrent use; each operation is a single atomic record
// update.
type Store struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]models.Counter
	order  []uint
}

// New returns an empty Store. The first assigned id is 1.
func New() *Store {
	return &Store{
		nextID: 1,
		items:  make(map[uint]models.Counter),
	}
}

// ValidateInput checks a (title, target) pair against the creation rules.
func ValidateInput(title string, target int) error {
	if title == "" {
		return fmt.Errorf("store: title is required: %w", ErrValidation)
	}
	if target < MinTarget || target > MaxTarget {
		return fmt.Errorf("store: target %d outside [%d, %d]: %w", target, MinTarget, MaxTarget, ErrValidation)
	}
	return nil
}

// Create adds a new counter and assigns the next sequential id. No id is
// consumed when validation fails.
func (s *Store) Create(title string, target int) (models.Counter, error) {
	if err := ValidateInput(title, target); err != nil {
		return models.Counter{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := models.Counter{
		ID:        s.nextID,
		Title:     title,
		Target:    target,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.items[c.ID] = c
	s.order = append(s.order, c.ID)
	return c, nil
}

// List returns all counters in insertion order. Insertion order is an
// implementation detail, not part of the contract.
func (s *Store) List() []models.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Counter, 0, len(s.items))
	for _, id := range s.order {
		if c, ok := s.items[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the counter with the given id.
func (s *Store) Get(id uint) (models.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return models.Counter{}, fmt.Errorf("store: get %d: %w", id, ErrNotFound)
	}
	return c, nil
}

// CompleteRun records a finished run: the counter's target field is
// overwritten with the achieved count and CompletedAt is stamped.
// CreatedAt is left untouched.
func (s *Store) CompleteRun(id uint, achieved int) (models.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok {
		return models.Counter{}, fmt.Errorf("store: complete %d: %w", id, ErrNotFound)
	}

	now := time.Now()
	c.Target = achieved
	c.CompletedAt = &now
	s.items[id] = c
	return c, nil
}

// Delete removes the counter with the given id. The id is never reused.
func (s *Store) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("store: delete %d: %w", id, ErrNotFound)
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len returns the number of counters currently stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
