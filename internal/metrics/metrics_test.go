package metrics

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve_CountsByResult(t *testing.T) {
	m := New()

	m.Observe("insert_photo", time.Now(), nil)
	m.Observe("insert_photo", time.Now(), nil)
	m.Observe("insert_photo", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("insert_photo", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("insert_photo", "error")))
}

func TestObserve_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.Observe("x", time.Now(), nil) })
}

type fakeEngine struct {
	ready bool
	stats sql.DBStats
}

func (f fakeEngine) Backend() string    { return "memory" }
func (f fakeEngine) Ready() bool        { return f.ready }
func (f fakeEngine) Stats() sql.DBStats { return f.stats }

func TestEngineCollector(t *testing.T) {
	c := NewEngineCollector(fakeEngine{ready: true, stats: sql.DBStats{OpenConnections: 1, InUse: 1}})

	assert.Equal(t, 4, testutil.CollectAndCount(c))
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	m := New()
	require.NoError(t, m.Register(NewEngineCollector(fakeEngine{ready: true})))
	m.Observe("list_photos", time.Now(), nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tripkeeper_store_operations_total{operation="list_photos",result="ok"} 1`)
	assert.Contains(t, string(body), `tripkeeper_engine_ready{backend="memory"} 1`)
}

func TestRegister_Duplicate(t *testing.T) {
	m := New()
	c := NewEngineCollector(fakeEngine{})
	require.NoError(t, m.Register(c))
	assert.Error(t, m.Register(c))
}
