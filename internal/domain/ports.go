package domain

import "context"

// CatalogSource fetches the menu document. Implementations can be
// HTTP-backed or static.
type CatalogSource interface {
	FetchMenu(ctx context.Context) (*Menu, error)
}

// OrderPlacer places a single unit order for one item.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, itemID string) (*OrderRecord, error)
}

// Scheduler takes custody of a confirmed order. Its failures are its own
// concern; callers do not inspect them.
type Scheduler interface {
	Schedule(ctx context.Context, order OrderRecord)
}

// DeliveryStore persists scheduled deliveries.
type DeliveryStore interface {
	Save(ctx context.Context, d *Delivery) error
	Load(ctx context.Context, orderID string) (*Delivery, error)
	Delete(ctx context.Context, orderID string) error
	ListActive(ctx context.Context) ([]*Delivery, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or a terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
