package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector 指标收集器
type Collector struct {
	// HTTP 指标
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// 爬虫指标
	notesFetchedTotal    prometheus.Counter
	upstreamErrorsTotal  *prometheus.CounterVec
	mediaDownloadsTotal  *prometheus.CounterVec
	exportRowsTotal      *prometheus.CounterVec
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		notesFetchedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "spider_notes_fetched_total",
				Help: "Total number of notes normalized successfully",
			},
		),
		upstreamErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spider_upstream_errors_total",
				Help: "Total number of upstream (platform) failures",
			},
			[]string{"op"},
		),
		mediaDownloadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spider_media_downloads_total",
				Help: "Total number of media downloads",
			},
			[]string{"kind", "status"},
		),
		exportRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spider_export_rows_total",
				Help: "Total number of rows written to export files",
			},
			[]string{"kind"},
		),
	}
}

var (
	globalCollector *Collector
	once            sync.Once
)

// GetGlobalCollector 获取全局收集器
func GetGlobalCollector() *Collector {
	once.Do(func() {
		globalCollector = NewCollector()
	})
	return globalCollector
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (c *Collector) RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// AddNotesFetched 累加成功归一化的笔记数
func (c *Collector) AddNotesFetched(n int) {
	if n > 0 {
		c.notesFetchedTotal.Add(float64(n))
	}
}

// IncUpstreamError 记录一次平台接口失败
func (c *Collector) IncUpstreamError(op string) {
	c.upstreamErrorsTotal.WithLabelValues(op).Inc()
}

// IncMediaDownload 记录一次媒体下载
func (c *Collector) IncMediaDownload(kind, status string) {
	c.mediaDownloadsTotal.WithLabelValues(kind, status).Inc()
}

// AddExportRows 累加导出行数
func (c *Collector) AddExportRows(kind string, n int) {
	if n > 0 {
		c.exportRowsTotal.WithLabelValues(kind).Add(float64(n))
	}
}
