// Package delivery implements the background scheduler that takes custody
// of placed orders, counts their ETAs down and tells the user when a
// delivery is due.
package delivery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
	"github.com/hammamikhairi/crunchyorder/internal/metrics"
)

// Compile-time interface check.
var _ domain.Scheduler = (*Scheduler)(nil)

// Namer resolves an item identifier to its display name.
type Namer interface {
	Name(id string) string
}

// Option configures the scheduler.
type Option func(*Scheduler)

// WithTickInterval sets how often the scheduler advances countdowns.
func WithTickInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.tickInterval = d
	}
}

// WithMinute sets the wall-clock length of one ETA minute. Demos and
// tests shrink it.
func WithMinute(d time.Duration) Option {
	return func(s *Scheduler) {
		s.minute = d
	}
}

// WithNotifyCooldown sets the minimum time between repeated due notifications.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Scheduler) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation sets the escalation level after which the scheduler stops nagging.
func WithMaxEscalation(level int) Option {
	return func(s *Scheduler) {
		s.maxEscalation = level
	}
}

// WithMetrics counts deliveries that become due.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// Scheduler runs in the background and manages delivery countdowns + notifications.
type Scheduler struct {
	store          domain.DeliveryStore
	notifier       domain.Notifier
	names          Namer
	log            *logger.Logger
	metrics        *metrics.Metrics
	tickInterval   time.Duration
	minute         time.Duration
	notifyCooldown time.Duration
	maxEscalation  int

	// dmu guards the Delivery values reachable through the store.
	dmu sync.Mutex

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a delivery scheduler with the given dependencies and options.
func New(store domain.DeliveryStore, notifier domain.Notifier, names Namer, log *logger.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:          store,
		notifier:       notifier,
		names:          names,
		log:            log,
		tickInterval:   1 * time.Second,
		minute:         time.Minute,
		notifyCooldown: 2 * time.Minute,
		maxEscalation:  2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule takes custody of a confirmed order. Storage failures are logged;
// the caller is never told.
func (s *Scheduler) Schedule(ctx context.Context, order domain.OrderRecord) {
	d := &domain.Delivery{
		Order:       order,
		ItemName:    s.names.Name(order.ItemID),
		Remaining:   time.Duration(order.ETAMinutes) * s.minute,
		Status:      domain.DeliveryPending,
		ScheduledAt: time.Now(),
	}

	s.dmu.Lock()
	err := s.store.Save(ctx, d)
	s.dmu.Unlock()
	if err != nil {
		s.log.Error("scheduler: saving delivery %s: %v", order.OrderID, err)
		return
	}
	s.log.Info("scheduled order %s (%s), eta %dm", order.OrderID, d.ItemName, order.ETAMinutes)
}

// Start begins the background scheduler loop. Non-blocking.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("delivery scheduler already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.loop(childCtx, s.done)

	s.log.Info("delivery scheduler started (tick=%s, minute=%s)", s.tickInterval, s.minute)
}

// Stop gracefully shuts down the scheduler and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("delivery scheduler stopped")
}

// Acknowledge silences a delivery and drops it from the store.
func (s *Scheduler) Acknowledge(ctx context.Context, orderID string) error {
	s.dmu.Lock()
	defer s.dmu.Unlock()

	d, err := s.store.Load(ctx, orderID)
	if err != nil {
		return fmt.Errorf("loading delivery: %w", err)
	}
	d.Status = domain.DeliveryAcknowledged
	if err := s.store.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("deleting delivery: %w", err)
	}
	s.log.Debug("acknowledged delivery %s", orderID)
	return nil
}

// Pending returns copies of all pending and due deliveries.
func (s *Scheduler) Pending(ctx context.Context) ([]domain.Delivery, error) {
	s.dmu.Lock()
	defer s.dmu.Unlock()

	list, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Delivery, len(list))
	for i, d := range list {
		out[i] = *d
	}
	return out, nil
}

// Wait blocks until no delivery is still pending or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		if s.pendingCount(ctx) == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) pendingCount(ctx context.Context) int {
	active, err := s.Pending(ctx)
	if err != nil {
		s.log.Error("scheduler: listing deliveries: %v", err)
		return 0
	}
	n := 0
	for _, d := range active {
		if d.Status == domain.DeliveryPending {
			n++
		}
	}
	return n
}

// loop is the main tick loop.
func (s *Scheduler) loop(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, s.tickInterval, time.Now())
		}
	}
}

// tick runs one cycle: advance countdowns by elapsed, fire notifications.
// Notifications are sent after the lock is released.
func (s *Scheduler) tick(ctx context.Context, elapsed time.Duration, now time.Time) {
	type note struct {
		msg    string
		urgent bool
	}
	var notes []note

	s.dmu.Lock()
	deliveries, err := s.store.ListActive(ctx)
	if err != nil {
		s.dmu.Unlock()
		s.log.Error("scheduler: listing active deliveries: %v", err)
		return
	}

	for _, d := range deliveries {
		changed := false

		switch d.Status {
		case domain.DeliveryPending:
			d.Remaining -= elapsed
			changed = true
			if d.Remaining <= 0 {
				d.Remaining = 0
				d.Status = domain.DeliveryDue
				d.LastNotified = now
				s.metrics.DeliveryDue()
				s.log.Debug("delivery %s is due", d.Order.OrderID)
				notes = append(notes, note{msg: s.escalationMessage(d), urgent: true})
				d.EscalationLevel = 1
			}

		case domain.DeliveryDue:
			if d.EscalationLevel > s.maxEscalation {
				continue // Stop nagging.
			}
			if !d.LastNotified.IsZero() && now.Sub(d.LastNotified) < s.notifyCooldown {
				continue // Cooldown active.
			}
			notes = append(notes, note{msg: s.escalationMessage(d)})
			d.LastNotified = now
			d.EscalationLevel++
			changed = true
		}

		if changed {
			if err := s.store.Save(ctx, d); err != nil {
				s.log.Error("scheduler: saving delivery %s: %v", d.Order.OrderID, err)
			}
		}
	}
	s.dmu.Unlock()

	for _, n := range notes {
		var err error
		if n.urgent {
			err = s.notifier.NotifyUrgent(ctx, n.msg)
		} else {
			err = s.notifier.Notify(ctx, n.msg)
		}
		if err != nil {
			s.log.Error("scheduler: notifying: %v", err)
		}
	}
}

// escalationMessage returns a message based on the escalation level.
func (s *Scheduler) escalationMessage(d *domain.Delivery) string {
	switch d.EscalationLevel {
	case 0:
		return fmt.Sprintf("[Delivery] Your %s should be at the door now.", d.ItemName)
	case 1:
		return fmt.Sprintf("[Delivery] %s is waiting for you.", d.ItemName)
	default:
		return fmt.Sprintf("[Delivery] %s.", d.ItemName)
	}
}
