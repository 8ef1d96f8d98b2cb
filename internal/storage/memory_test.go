package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

func delivery(id string, status domain.DeliveryStatus, at time.Time) *domain.Delivery {
	return &domain.Delivery{
		Order:       domain.OrderRecord{OrderID: id, ItemID: "margherita", ETAMinutes: 30, Status: "confirmed"},
		Remaining:   30 * time.Minute,
		Status:      status,
		ScheduledAt: at,
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()

	d := delivery("o-1", domain.DeliveryPending, time.Now())
	require.NoError(t, store.Save(ctx, d))

	loaded, err := store.Load(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "margherita", loaded.Order.ItemID)

	_, err = store.Load(ctx, "nonexistent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, store.Delete(ctx, "o-1"))
	_, err = store.Load(ctx, "o-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "o-1"), domain.ErrNotFound)
}

func TestMemoryStoreListActiveFiltersAndSorts(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil))
	ctx := context.Background()
	base := time.Now()

	for _, d := range []*domain.Delivery{
		delivery("o-3", domain.DeliveryDue, base.Add(2*time.Second)),
		delivery("o-1", domain.DeliveryPending, base),
		delivery("o-2", domain.DeliveryAcknowledged, base.Add(time.Second)),
		delivery("o-4", domain.DeliveryPending, base.Add(2*time.Second)),
	} {
		require.NoError(t, store.Save(ctx, d))
	}

	active, err := store.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "o-1", active[0].Order.OrderID)
	assert.Equal(t, "o-3", active[1].Order.OrderID)
	assert.Equal(t, "o-4", active[2].Order.OrderID)
}
