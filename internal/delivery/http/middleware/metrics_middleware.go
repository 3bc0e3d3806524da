package middleware

import (
	"net/http"
	"time"

	"holo-api/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
)

type MetricsMiddleware struct {
	collector *metrics.Collector
}

func NewMetricsMiddleware(collector *metrics.Collector) *MetricsMiddleware {
	return &MetricsMiddleware{collector: collector}
}

// Handle labels requests with the matched route template so that path
// parameters do not explode label cardinality.
func (m *MetricsMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		m.collector.RecordRequest(routeTemplate(r), r.Method, rec.statusCode, time.Since(start))
	})
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return tpl
}
