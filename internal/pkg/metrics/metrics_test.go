package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_RecordScenario(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("huc_test", reg)

	c.RecordScenario("basin", "ok", 12, 20*time.Millisecond)
	c.RecordScenario("basin", "ok", 3, 10*time.Millisecond)
	c.RecordScenario("region", "error", 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ScenarioRunsTotal.WithLabelValues("basin", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ScenarioRunsTotal.WithLabelValues("region", "error")))
}

func TestCollector_RecordReferenceLookup(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector("huc_test", reg)

	c.RecordReferenceLookup("regions", true)
	c.RecordReferenceLookup("regions", false)
	c.RecordReferenceLookup("regions", false)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ReferenceCacheTotal.WithLabelValues("regions", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ReferenceCacheTotal.WithLabelValues("regions", "miss")))
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordScenario("entire_domain", "ok", 1, time.Second)
		c.RecordAPIRequest("/api/v1/health", "GET", "200", time.Millisecond)
		c.RecordReferenceLookup("basins", true)
	})
}
