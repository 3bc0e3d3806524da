package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordLogin(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(LoginSuccess)
	c.RecordLogin(LoginFailed)
	c.RecordLogin(LoginFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues(LoginFailed)))
}

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("/api/v1/auth/me", http.MethodGet, http.StatusOK, 20*time.Millisecond)
	c.RecordRequest("/api/v1/auth/me", http.MethodGet, http.StatusUnauthorized, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/v1/auth/me", http.MethodGet, "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/v1/auth/me", http.MethodGet, "401")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRelationshipChange("assign")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `holo_relationship_changes_total{operation="assign"} 1`))
}
