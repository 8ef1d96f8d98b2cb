// Package checkout expands the cart into unit orders and hands confirmed
// orders to the scheduler.
package checkout

import (
	"context"

	"github.com/hammamikhairi/crunchyorder/internal/cart"
	"github.com/hammamikhairi/crunchyorder/internal/domain"
	"github.com/hammamikhairi/crunchyorder/internal/logger"
	"github.com/hammamikhairi/crunchyorder/internal/metrics"
)

// DefaultETAMinutes is assumed when the placement service omits an ETA.
const DefaultETAMinutes = 30

// Option configures the coordinator.
type Option func(*Coordinator)

// WithDefaultETA overrides DefaultETAMinutes.
func WithDefaultETA(minutes int) Option {
	return func(c *Coordinator) {
		if minutes > 0 {
			c.defaultETA = minutes
		}
	}
}

// WithMetrics records placement outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) { c.metrics = m }
}

// Receipt is the itemized summary shown before orders are placed.
type Receipt struct {
	Lines []cart.Line
	Total int
}

// Result describes a finished checkout.
type Result struct {
	Receipt Receipt
	Placed  []domain.OrderRecord
	Failed  int
	// MaxETA is the largest ETA among placed orders; zero when none were placed.
	MaxETA int
}

// HasETA reports whether any order was placed.
func (r Result) HasETA() bool { return len(r.Placed) > 0 }

// Coordinator places one order per unit, sequentially, in cart order.
type Coordinator struct {
	placer     domain.OrderPlacer
	scheduler  domain.Scheduler
	prices     cart.Pricer
	log        *logger.Logger
	metrics    *metrics.Metrics
	defaultETA int
}

// New creates a checkout coordinator.
func New(placer domain.OrderPlacer, scheduler domain.Scheduler, prices cart.Pricer, log *logger.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		placer:     placer,
		scheduler:  scheduler,
		prices:     prices,
		log:        log,
		defaultETA: DefaultETAMinutes,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Receipt builds the itemized summary for c without placing anything.
func (co *Coordinator) Receipt(c *cart.Cart) Receipt {
	return Receipt{Lines: c.Lines(co.prices), Total: c.Total(co.prices)}
}

// Checkout places every unit in the cart. An empty cart places nothing.
// A failed unit is logged and skipped; the rest still go through.
func (co *Coordinator) Checkout(ctx context.Context, c *cart.Cart) Result {
	var res Result
	if c.Empty() {
		co.log.Info("checkout with empty cart, nothing to place")
		return res
	}

	res.Receipt = co.Receipt(c)
	co.log.Info("checkout: %d item(s), %d unit(s), total %d", c.Len(), c.Units(), res.Receipt.Total)

	for _, it := range c.Items() {
		for i := 0; i < it.Quantity; i++ {
			rec, err := co.placer.PlaceOrder(ctx, it.ItemID)
			if err != nil {
				res.Failed++
				co.metrics.OrderFailed(it.ItemID)
				co.log.Error("order %s (%d/%d) failed: %v", it.ItemID, i+1, it.Quantity, err)
				continue
			}
			order := *rec
			if order.ETAMinutes == domain.ETAUnknown {
				order.ETAMinutes = co.defaultETA
			}
			co.metrics.OrderPlaced(it.ItemID)
			co.log.Debug("order %s placed for %s, eta %dm", order.OrderID, order.ItemID, order.ETAMinutes)

			co.scheduler.Schedule(ctx, order)

			res.Placed = append(res.Placed, order)
			if order.ETAMinutes > res.MaxETA {
				res.MaxETA = order.ETAMinutes
			}
		}
	}

	if res.Failed > 0 {
		co.log.Warn("checkout finished with %d failed unit(s)", res.Failed)
	}
	return res
}
