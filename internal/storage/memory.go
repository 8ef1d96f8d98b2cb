// Package storage provides delivery persistence implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Compile-time interface check.
var _ domain.DeliveryStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory delivery store. Safe for concurrent access.
type MemoryStore struct {
	mu         sync.RWMutex
	deliveries map[string]*domain.Delivery
	log        *logger.Logger
}

// NewMemoryStore creates an empty in-memory delivery store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		deliveries: make(map[string]*domain.Delivery),
		log:        log,
	}
}

// Save persists a delivery, keyed by order ID. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, d *domain.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving delivery %s (item=%s, status=%s)", d.Order.OrderID, d.Order.ItemID, d.Status)
	s.deliveries[d.Order.OrderID] = d
	return nil
}

// Load retrieves a delivery by order ID.
func (s *MemoryStore) Load(ctx context.Context, orderID string) (*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deliveries[orderID]
	if !ok {
		s.log.Debug("delivery not found: %s", orderID)
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// Delete removes a delivery by order ID.
func (s *MemoryStore) Delete(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.deliveries[orderID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.deliveries, orderID)
	s.log.Debug("deleted delivery %s", orderID)
	return nil
}

// ListActive returns pending and due deliveries, oldest schedule first.
func (s *MemoryStore) ListActive(ctx context.Context) ([]*domain.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Delivery
	for _, d := range s.deliveries {
		if d.Status == domain.DeliveryPending || d.Status == domain.DeliveryDue {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].Order.OrderID < out[j].Order.OrderID
		}
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	s.log.Debug("listing active deliveries, count=%d", len(out))
	return out, nil
}
