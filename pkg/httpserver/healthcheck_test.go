package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/httpserver"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]httpserver.Check
		status int
		report map[string]string
	}{
		{
			name:   "no checks",
			status: http.StatusOK,
			report: map[string]string{},
		},
		{
			name:   "all healthy",
			checks: map[string]httpserver.Check{"redis": ok, "postgres": ok},
			status: http.StatusOK,
			report: map[string]string{"redis": "ok", "postgres": "ok"},
		},
		{
			name:   "one failing",
			checks: map[string]httpserver.Check{"redis": ok, "mongo": fail},
			status: http.StatusServiceUnavailable,
			report: map[string]string{"redis": "ok", "mongo": "fail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			httpserver.ReadinessHandler(nil, time.Second, tt.checks)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.status, rec.Code)
			var got map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tt.report, got)
		})
	}
}

func TestReadinessHandler_AppliesTimeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	rec := httptest.NewRecorder()
	httpserver.ReadinessHandler(nil, 20*time.Millisecond, map[string]httpserver.Check{"slow": slow})(
		rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
