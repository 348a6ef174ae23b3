package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector 指标收集器
type Collector struct {
	// HTTP 指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 缓存指标
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// 异步任务指标
	WorkerTasksTotal  *prometheus.CounterVec
	WorkerQueueLength prometheus.Gauge

	// 业务指标
	PointsAwardedTotal *prometheus.CounterVec
	RedemptionsTotal   *prometheus.CounterVec
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"cache"},
		),
		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"cache"},
		),
		WorkerTasksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_tasks_total",
				Help: "Total number of async tasks processed",
			},
			[]string{"type", "result"},
		),
		WorkerQueueLength: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "worker_queue_length",
				Help: "Current length of the async task queue",
			},
		),
		PointsAwardedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "points_awarded_total",
				Help: "Total loyalty points awarded by reason",
			},
			[]string{"reason"},
		),
		RedemptionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redemptions_total",
				Help: "Total redemption requests by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Default 全局默认收集器
var Default = NewCollector()
