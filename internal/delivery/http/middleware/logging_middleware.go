package middleware

import (
	"net/http"
	"strconv"
	"time"

	"medimeet-api/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request and records HTTP metrics.
type RequestLogger struct {
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewRequestLogger(log *logrus.Logger, m *metrics.Metrics) *RequestLogger {
	return &RequestLogger{log: log, metrics: m}
}

func (l *RequestLogger) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		route := routeTemplate(r)

		l.metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		l.metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		entry := l.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"route":       route,
			"status":      rec.status,
			"duration_ms": duration.Milliseconds(),
			"remote_ip":   clientIP(r),
		})

		switch {
		case rec.status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case rec.status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}
	})
}

// routeTemplate keeps metric labels bounded by using the matched route
// pattern instead of the raw path.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}
