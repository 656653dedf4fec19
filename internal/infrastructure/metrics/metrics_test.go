package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.SetBusy(3)
	m.IncrementNotification("error")
	m.IncrementNotification("error")
	m.IncrementImport("xml", "ok")
	m.IncrementStale()
	m.ObserveRequest("GET", "/facturas", 200, 15*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.BusyOperations))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ImportsCompleted.WithLabelValues("xml", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StaleResponses))
	assert.Equal(t, 1, testutil.CollectAndCount(m.APIRequests))
}

func TestNew_RegistrosIndependientes(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}
