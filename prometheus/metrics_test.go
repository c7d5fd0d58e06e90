package prometheus

import (
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/handlersyss/BarSystem/pkg/config"
)

func TestMain(m *testing.M) {
	InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "bar_system_metrics_test"}})
	os.Exit(m.Run())
}

func TestSetOpenTabsSeedsGauge(t *testing.T) {
	SetOpenTabs(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(OpenTabsGauge))

	// Handlers keep moving the same gauge afterwards.
	OpenTabsGauge.Inc()
	assert.Equal(t, 4.0, testutil.ToFloat64(OpenTabsGauge))

	SetOpenTabs(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(OpenTabsGauge))
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "success", outcome(true))
	assert.Equal(t, "error", outcome(false))
}
