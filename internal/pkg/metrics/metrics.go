package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 予約リクエストの結果別件数
	// outcome: confirmed, waitlisted, promoted, still_waitlisted, already_booked, not_found, failed, error
	BookingsTotal *prometheus.CounterVec

	// 予約1件の処理時間（再試行を含む）
	BookingDuration prometheus.Histogram

	// 競合による予約トランザクションの再試行回数
	BookingConflictRetries prometheus.Counter

	// ID採番の回数（entity: reservation, customer）
	IDAllocationsTotal *prometheus.CounterVec

	// キャンセル待ちから確定への繰り上げ件数
	WaitlistPromotionsTotal prometheus.Counter

	// 分散ロックの操作時間（operation: acquire/release, status: success/failed）
	DistributedLockDuration *prometheus.HistogramVec

	// 空席キャッシュの参照結果（result: hit/miss）
	CapacityCacheRequests *prometheus.CounterVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking requests by outcome",
			},
			[]string{"outcome"},
		),
		BookingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "booking_duration_seconds",
				Help:    "Time spent deciding a booking, including retries",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		BookingConflictRetries: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "booking_conflict_retries_total",
				Help: "Total number of booking transactions retried after a conflict",
			},
		),
		IDAllocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "id_allocations_total",
				Help: "Total number of identifiers allocated",
			},
			[]string{"entity"},
		),
		WaitlistPromotionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "waitlist_promotions_total",
				Help: "Total number of waitlisted reservations promoted to confirmed",
			},
		),
		DistributedLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "distributed_lock_duration_seconds",
				Help:    "Time spent on distributed lock operations",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "status"},
		),
		CapacityCacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "capacity_cache_requests_total",
				Help: "Seat availability cache lookups by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.BookingDuration,
		m.BookingConflictRetries,
		m.IDAllocationsTotal,
		m.WaitlistPromotionsTotal,
		m.DistributedLockDuration,
		m.CapacityCacheRequests,
	)

	return m
}

// Discard はどこにも登録しないメトリクスを返す（CLIやテスト用）
func Discard() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
