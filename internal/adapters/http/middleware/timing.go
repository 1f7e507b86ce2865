package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"campusevents/internal/adapters/http/perf"
)

// DefaultSlowRequestMs is the threshold above which requests log at WARN.
const DefaultSlowRequestMs = 200

func slowRequestThreshold() time.Duration {
	ms := DefaultSlowRequestMs
	if v := os.Getenv("CAMPUS_SLOW_REQUEST_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Timing returns middleware that logs request durations and, when a
// collector is given, feeds the admin performance report. Poster file
// requests are not measured.
func Timing(collector *perf.Collector) func(http.Handler) http.Handler {
	threshold := slowRequestThreshold()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/uploads/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sr, r)
			elapsed := time.Since(start)

			level := slog.LevelDebug
			event := "request"
			if elapsed >= threshold {
				level = slog.LevelWarn
				event = "slow_request"
			}
			slog.Log(r.Context(), level, event,
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.status,
				"duration_ms", float64(elapsed.Microseconds())/1000.0,
			)

			if collector != nil {
				collector.Add(perf.Sample{
					Kind:     perf.KindHTTP,
					Op:       r.Method + " " + r.URL.Path,
					Status:   sr.status,
					Duration: elapsed,
					At:       start,
				})
			}
		})
	}
}
