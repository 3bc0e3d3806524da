package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"holo-api/internal/domain/entity"
	"holo-api/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware_LogsRequest(t *testing.T) {
	log, hook := test.NewNullLogger()
	mw := NewLoggingMiddleware(log)

	handler := mw.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/phrases/x", nil)
	req = req.WithContext(WithCurrentUser(req.Context(), &entity.User{ID: 7}))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "http_request", entry.Message)
	assert.Equal(t, http.StatusNotFound, entry.Data["status"])
	assert.Equal(t, "/api/v1/phrases/x", entry.Data["path"])
	assert.Equal(t, uint(7), entry.Data["user_id"])
}

func TestLoggingMiddleware_RecoverReturns500(t *testing.T) {
	log, hook := test.NewNullLogger()
	mw := NewLoggingMiddleware(log)

	handler := mw.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "panic recovered", hook.LastEntry().Message)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	router := mux.NewRouter()
	router.Use(NewMetricsMiddleware(collector).Handle)
	router.HandleFunc("/patients/{patientId}/therapists", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}).Methods(http.MethodGet)

	for _, path := range []string{"/patients/1/therapists", "/patients/2/therapists"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	count, err := testutil.GatherAndCount(reg, "holo_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "both requests share one series")
}
