// Package metrics 库存服务的Prometheus指标
//
// 指标在包加载时创建,InitMetrics只负责注册;未注册时记录指标也是安全的,
// 便于单元测试直接调用业务代码。
//
// 命名规范:
//   - Counter以_total结尾
//   - Histogram以单位结尾(_seconds)
//   - 标签只用有限取值的维度(type、status、result),不要用item_id
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "inventory"

var registerOnce sync.Once

var (
	// HTTP请求

	// HTTPRequestsTotal HTTP请求总数,标签:method、path、status
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP请求耗时(秒)",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "正在处理的HTTP请求数",
		},
	)

	// 库存业务

	// StockMovementsTotal 库存变动次数,标签:type(in/out)
	StockMovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "库存变动次数",
		},
		[]string{"type"},
	)

	// StockMovementsRejectedTotal 被拒绝的库存变动,标签:reason
	StockMovementsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_rejected_total",
			Help:      "被拒绝的库存变动次数",
		},
		[]string{"reason"},
	)

	// ItemsTotal 目录中的物品数
	ItemsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "items",
			Help:      "目录中的物品数",
		},
	)

	// StockAlerts 当前告警数,标签:status(warning/critical)
	StockAlerts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stock_alerts",
			Help:      "当前低库存告警数",
		},
		[]string{"status"},
	)

	// ImportRowsTotal 导入行数,标签:result(updated/added/skipped)
	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "导入的行数",
		},
		[]string{"result"},
	)

	// 熔断器

	// CircuitBreakerState 熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "熔断器状态(0=CLOSED, 1=OPEN, 2=HALF_OPEN)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests 熔断器请求数,标签:name、result(success/failure/rejected)
	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	// 消息队列

	// MessagesPublishedTotal 事件发布数,标签:routing_key、result(success/failure/dropped)
	MessagesPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_published_total",
			Help:      "事件发布总数",
		},
		[]string{"routing_key", "result"},
	)

	// MessagesConsumedTotal 事件消费数,标签:queue、result(success/failure)
	MessagesConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "事件消费总数",
		},
		[]string{"queue", "result"},
	)
)

// Collectors 全部指标
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		HTTPRequestsInProgress,
		StockMovementsTotal,
		StockMovementsRejectedTotal,
		ItemsTotal,
		StockAlerts,
		ImportRowsTotal,
		CircuitBreakerState,
		CircuitBreakerRequests,
		MessagesPublishedTotal,
		MessagesConsumedTotal,
	}
}

// InitMetrics 注册到默认Registry,重复调用无副作用
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(Collectors()...)
	})
}

// RecordMovement 记录一次成功的库存变动
func RecordMovement(movementType string) {
	StockMovementsTotal.WithLabelValues(movementType).Inc()
}

// RecordRejectedMovement 记录一次被拒绝的库存变动
func RecordRejectedMovement(reason string) {
	StockMovementsRejectedTotal.WithLabelValues(reason).Inc()
}

// SetStockLevels 刷新目录规模与告警数
func SetStockLevels(items, warning, critical int) {
	ItemsTotal.Set(float64(items))
	StockAlerts.WithLabelValues("warning").Set(float64(warning))
	StockAlerts.WithLabelValues("critical").Set(float64(critical))
}

// RecordImport 记录一次导入的结果
func RecordImport(updated, added, skipped int) {
	ImportRowsTotal.WithLabelValues("updated").Add(float64(updated))
	ImportRowsTotal.WithLabelValues("added").Add(float64(added))
	ImportRowsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// SetGaugeVec 设置GaugeVec值(带标签)
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// IncCounterVec 递增CounterVec(带标签)
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// ObserveHistogramVec 记录HistogramVec观测值(带标签)
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
