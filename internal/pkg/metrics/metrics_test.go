package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	// 各テストで新しいレジストリを使用
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	require.NotNil(t, m)
	assert.NotNil(t, m.HTTPRequestsTotal)
	assert.NotNil(t, m.HTTPRequestDuration)
	assert.NotNil(t, m.BookingsTotal)
	assert.NotNil(t, m.BookingDuration)
	assert.NotNil(t, m.BookingConflictRetries)
	assert.NotNil(t, m.IDAllocationsTotal)
	assert.NotNil(t, m.WaitlistPromotionsTotal)
	assert.NotNil(t, m.DistributedLockDuration)
	assert.NotNil(t, m.CapacityCacheRequests)
}

func TestHTTPRequestsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/cruises", "200").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "201").Inc()
	m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/bookings", "409").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "http_requests_total" {
			found = true
			assert.Equal(t, 3, len(f.GetMetric()))
		}
	}
	assert.True(t, found, "http_requests_total metric not found")
}

func TestBookingsTotal(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.BookingsTotal.WithLabelValues("confirmed").Inc()
	m.BookingsTotal.WithLabelValues("confirmed").Inc()
	m.BookingsTotal.WithLabelValues("waitlisted").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("waitlisted")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.BookingsTotal))
}

func TestCounters(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.BookingConflictRetries.Inc()
	m.WaitlistPromotionsTotal.Add(3)
	m.IDAllocationsTotal.WithLabelValues("reservation").Inc()
	m.IDAllocationsTotal.WithLabelValues("customer").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflictRetries))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WaitlistPromotionsTotal))
	assert.Equal(t, 2, testutil.CollectAndCount(m.IDAllocationsTotal))
}

func TestHistograms(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.BookingDuration.Observe(0.012)
	m.DistributedLockDuration.WithLabelValues("acquire", "success").Observe(0.015)
	m.DistributedLockDuration.WithLabelValues("release", "success").Observe(0.002)
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/v1/cruises").Observe(0.025)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["booking_duration_seconds"])
	assert.True(t, names["distributed_lock_duration_seconds"])
	assert.True(t, names["http_request_duration_seconds"])
}

func TestDiscard_DoesNotTouchDefaultRegistry(t *testing.T) {
	a := Discard()
	b := Discard()
	assert.NotSame(t, a, b)
	a.BookingsTotal.WithLabelValues("confirmed").Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BookingsTotal.WithLabelValues("confirmed")))
}

func TestInit_CreatesDefaultMetrics(t *testing.T) {
	oldMetrics := defaultMetrics
	defer func() { defaultMetrics = oldMetrics }()

	// Initを呼ぶとデフォルトレジストリに登録するため、テストでは直接セット
	m := NewWithRegistry(prometheus.NewRegistry())
	defaultMetrics = m

	assert.Equal(t, m, Get())
}
