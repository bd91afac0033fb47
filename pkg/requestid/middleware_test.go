package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/requestid"
)

func serve(t *testing.T, inbound string) (seen string, echoed string) {
	t.Helper()
	h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if inbound != "" {
		req.Header.Set(requestid.Header, inbound)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return seen, rec.Header().Get(requestid.Header)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("reuses valid inbound ids", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"abc123", "req_1-2", "550e8400-e29b-41d4-a716-446655440000", strings.Repeat("a", 128)} {
			seen, echoed := serve(t, id)
			assert.Equal(t, id, seen)
			assert.Equal(t, id, echoed)
		}
	})

	t.Run("replaces missing or malformed ids", func(t *testing.T) {
		t.Parallel()
		for _, id := range []string{"", "has space", "a/b", "<script>", "é", strings.Repeat("a", 129)} {
			seen, echoed := serve(t, id)
			assert.NotEqual(t, id, seen)
			assert.Equal(t, seen, echoed)
			_, err := uuid.Parse(seen)
			assert.NoError(t, err, "generated id should be a uuid")
		}
	})
}

func TestContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, requestid.FromContext(context.Background()))
	assert.Equal(t, "r-1", requestid.FromContext(requestid.WithContext(context.Background(), "r-1")))
}

func TestLoggerExtractor(t *testing.T) {
	t.Parallel()

	extract := requestid.LoggerExtractor()

	_, ok := extract(context.Background())
	assert.False(t, ok)

	attr, ok := extract(requestid.WithContext(context.Background(), "r-1"))
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "r-1", attr.Value.String())
}
