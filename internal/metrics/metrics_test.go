package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Extraction("pattern")
	m.Extraction("pattern")
	m.Extraction("model")
	m.OrderPlaced("margherita")
	m.OrderFailed("brownie")
	m.SetCartValue(598)
	m.DeliveryDue()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Extractions.WithLabelValues("pattern")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("model")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlaced.WithLabelValues("margherita")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersFailed.WithLabelValues("brownie")))
	assert.Equal(t, 598.0, testutil.ToFloat64(m.CartValue))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DeliveriesDue))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Extraction("none")
		m.OrderPlaced("x")
		m.OrderFailed("x")
		m.SetCartValue(1)
		m.DeliveryDue()
	})
}
