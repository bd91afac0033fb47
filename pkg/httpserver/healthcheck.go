package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/axolutions/linkbio-dashboard/pkg/logger"
)

// Check probes one dependency.
type Check func(context.Context) error

// LivenessHandler always answers 200 while the process can serve requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every check with its own timeout and answers 503 if
// any fails. The body maps check names to "ok" or "fail".
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks map[string]Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		report := make(map[string]string, len(names))

		for _, name := range names {
			ctx, cancel := r.Context(), context.CancelFunc(func() {})
			if timeout > 0 {
				ctx, cancel = context.WithTimeout(r.Context(), timeout)
			}
			err := checks[name](ctx)
			cancel()

			if err != nil {
				status = http.StatusServiceUnavailable
				report[name] = "fail"
				log.WarnContext(r.Context(), "readiness check failed",
					logger.Component(name), logger.Error(err))
				continue
			}
			report[name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
