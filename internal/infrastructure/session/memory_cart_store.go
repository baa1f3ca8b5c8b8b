package session

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/cart"
)

// MemoryCartStore implements cart.Store in process memory.
// Suitable for tests and single-instance development without Redis.
type MemoryCartStore struct {
	mu       sync.RWMutex
	carts    map[string]map[uuid.UUID]int
	shipping map[string]cart.StagedShipping
}

// NewMemoryCartStore creates an empty in-memory cart store
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{
		carts:    make(map[string]map[uuid.UUID]int),
		shipping: make(map[string]cart.StagedShipping),
	}
}

// Get returns the cart for a session, empty if none exists
func (s *MemoryCartStore) Get(_ context.Context, sessionID string) (cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := cart.Cart{}
	for productID, quantity := range s.carts[sessionID] {
		c.Lines = append(c.Lines, cart.Line{ProductID: productID, Quantity: quantity})
	}
	return c, nil
}

// Add inserts a product line if absent, reporting whether it was added
func (s *MemoryCartStore) Add(_ context.Context, sessionID string, productID uuid.UUID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.carts[sessionID]
	if !ok {
		lines = make(map[uuid.UUID]int)
		s.carts[sessionID] = lines
	}
	if _, exists := lines[productID]; exists {
		return false, nil
	}
	lines[productID] = quantity
	return true, nil
}

// Update overwrites the quantity of a product line
func (s *MemoryCartStore) Update(_ context.Context, sessionID string, productID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, ok := s.carts[sessionID]
	if !ok {
		lines = make(map[uuid.UUID]int)
		s.carts[sessionID] = lines
	}
	lines[productID] = quantity
	return nil
}

// Remove deletes a product line
func (s *MemoryCartStore) Remove(_ context.Context, sessionID string, productID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lines, ok := s.carts[sessionID]; ok {
		delete(lines, productID)
	}
	return nil
}

// Clear empties the session cart
func (s *MemoryCartStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
	return nil
}

// SetShipping stages the checkout delivery details in the session
func (s *MemoryCartStore) SetShipping(_ context.Context, sessionID string, shipping cart.StagedShipping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shipping[sessionID] = shipping
	return nil
}

// GetShipping returns the staged delivery details, nil if none staged
func (s *MemoryCartStore) GetShipping(_ context.Context, sessionID string) (*cart.StagedShipping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	shipping, ok := s.shipping[sessionID]
	if !ok {
		return nil, nil
	}
	return &shipping, nil
}

// ClearShipping discards the staged delivery details
func (s *MemoryCartStore) ClearShipping(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.shipping, sessionID)
	return nil
}

// Ensure MemoryCartStore implements cart.Store
var _ cart.Store = (*MemoryCartStore)(nil)
