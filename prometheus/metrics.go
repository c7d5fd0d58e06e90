package prometheus

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/handlersyss/BarSystem/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.CounterVec

	// Order/inventory metrics
	TabOperationsCounter     prometheus.CounterVec
	ProductOperationsCounter prometheus.CounterVec
	TableOperationsCounter   prometheus.CounterVec
	ProductInventoryGauge    prometheus.GaugeVec
	OpenTabsGauge            prometheus.Gauge
	SalesTotalCounter        prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	// Use metric prefix from configuration
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"reason"},
	)

	TabOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tab_operations_total",
			Help: "Total number of tab operations",
		},
		[]string{"operation", "outcome"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation", "outcome"},
	)

	TableOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_table_operations_total",
			Help: "Total number of table operations",
		},
		[]string{"operation", "outcome"},
	)

	ProductInventoryGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_product_inventory",
			Help: "Current inventory level for products",
		},
		[]string{"product_id", "product_name", "category"},
	)

	OpenTabsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_open_tabs",
			Help: "Number of currently open tabs",
		},
	)

	SalesTotalCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_sales_total",
			Help: "Gross revenue of closed tabs",
		},
	)
}

// RecordAuthError increments the counter for failed authentications
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordTabOperation increments the counter for tab operations
func RecordTabOperation(operation string, ok bool) {
	TabOperationsCounter.WithLabelValues(operation, outcome(ok)).Inc()
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string, ok bool) {
	ProductOperationsCounter.WithLabelValues(operation, outcome(ok)).Inc()
}

// RecordTableOperation increments the counter for table operations
func RecordTableOperation(operation string, ok bool) {
	TableOperationsCounter.WithLabelValues(operation, outcome(ok)).Inc()
}

// UpdateProductInventory updates the gauge for product inventory
func UpdateProductInventory(productID int, productName string, category string, count int) {
	ProductInventoryGauge.WithLabelValues(strconv.Itoa(productID), productName, category).Set(float64(count))
}

// RecordSale adds a closed tab's total to the revenue counter
func RecordSale(total float64) {
	SalesTotalCounter.Add(total)
}

// SetOpenTabs overwrites the open tab gauge. Used at startup so tabs
// loaded from the store are reflected before any handler moves the gauge.
func SetOpenTabs(count int) {
	OpenTabsGauge.Set(float64(count))
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}
