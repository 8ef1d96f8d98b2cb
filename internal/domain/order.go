package domain

import "time"

// ETAUnknown marks an order whose response carried no ETA.
const ETAUnknown = -1

// OrderRecord is what the placement service returns for one unit.
// ETAMinutes is ETAUnknown when the service omitted it.
type OrderRecord struct {
	OrderID    string `json:"order_id"`
	ItemID     string `json:"item_id"`
	ETAMinutes int    `json:"eta_minutes"`
	Status     string `json:"status"`
}

// Delivery is an order under scheduler custody.
type Delivery struct {
	Order           OrderRecord
	ItemName        string
	Remaining       time.Duration
	Status          DeliveryStatus
	ScheduledAt     time.Time
	LastNotified    time.Time
	EscalationLevel int
}

// DeliveryStatus tracks where a scheduled order is in its countdown.
type DeliveryStatus int

const (
	DeliveryPending DeliveryStatus = iota
	DeliveryDue
	DeliveryAcknowledged
)

// String returns a human-readable delivery status.
func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryPending:
		return "pending"
	case DeliveryDue:
		return "due"
	case DeliveryAcknowledged:
		return "acknowledged"
	default:
		return "unknown"
	}
}
