package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := New()
	c.ObservePose(nil)
	c.ObservePose(nil)
	c.ObservePose(errors.New("boom"))
	c.ObserveStage("merge", 20*time.Millisecond)
	c.AddInteractions("hydrogen_bond", 4)
	c.AddInteractions("pi_stacking", 0)
	c.ObserveBatch()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.poses.WithLabelValues(StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.poses.WithLabelValues(StatusFailed)))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.interactions.WithLabelValues("hydrogen_bond")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.interactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.batches))
	assert.Equal(t, 1, testutil.CollectAndCount(c.stageSeconds))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObservePose(nil)
		c.ObserveStage("detect", time.Second)
		c.AddInteractions("salt_bridge", 1)
		c.ObserveBatch()
	})
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.ObservePose(nil)

	path := filepath.Join(t.TempDir(), "dock.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dock_poses_total{status="ok"} 1`)
}
