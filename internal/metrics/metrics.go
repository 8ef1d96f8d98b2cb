// Package metrics exposes Prometheus counters for the ordering flow.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hammamikhairi/crunchyorder/internal/logger"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Extractions   *prometheus.CounterVec
	OrdersPlaced  *prometheus.CounterVec
	OrdersFailed  *prometheus.CounterVec
	CartValue     prometheus.Gauge
	DeliveriesDue prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg. Pass prometheus.NewRegistry() in
// tests to keep runs isolated.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Extractions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crunchy_extractions_total",
				Help: "Item extraction attempts by the stage that produced the result",
			},
			[]string{"stage"},
		),
		OrdersPlaced: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crunchy_orders_placed_total",
				Help: "Unit orders accepted by the placement service",
			},
			[]string{"item_id"},
		),
		OrdersFailed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crunchy_orders_failed_total",
				Help: "Unit orders the placement service rejected or never answered",
			},
			[]string{"item_id"},
		),
		CartValue: f.NewGauge(prometheus.GaugeOpts{
			Name: "crunchy_cart_value",
			Help: "Current cart total in currency units",
		}),
		DeliveriesDue: f.NewCounter(prometheus.CounterOpts{
			Name: "crunchy_deliveries_due_total",
			Help: "Scheduled deliveries whose ETA elapsed",
		}),
		gatherer: reg,
	}
}

// Extraction records which stage answered an extraction.
func (m *Metrics) Extraction(stage string) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(stage).Inc()
}

// OrderPlaced records a confirmed unit order.
func (m *Metrics) OrderPlaced(itemID string) {
	if m == nil {
		return
	}
	m.OrdersPlaced.WithLabelValues(itemID).Inc()
}

// OrderFailed records a failed unit order.
func (m *Metrics) OrderFailed(itemID string) {
	if m == nil {
		return
	}
	m.OrdersFailed.WithLabelValues(itemID).Inc()
}

// SetCartValue updates the cart total gauge.
func (m *Metrics) SetCartValue(v int) {
	if m == nil {
		return
	}
	m.CartValue.Set(float64(v))
}

// DeliveryDue records an elapsed delivery ETA.
func (m *Metrics) DeliveryDue() {
	if m == nil {
		return
	}
	m.DeliveriesDue.Inc()
}

// Serve exposes /metrics on addr until ctx is cancelled. Non-blocking.
func (m *Metrics) Serve(ctx context.Context, addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("metrics server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
