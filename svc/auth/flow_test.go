package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/cookie"
	"github.com/axolutions/linkbio-dashboard/svc/auth"
)

func TestFlowLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := auth.FlowLifecycle.New()
	assert.Equal(t, auth.StageInitiated, m.Current())

	_, err := m.Fire(ctx, auth.EventExchange, nil)
	require.Error(t, err, "cannot exchange before the callback")

	stage, err := m.Fire(ctx, auth.EventCallback, nil)
	require.NoError(t, err)
	assert.Equal(t, auth.StageCallbackReceived, stage)

	_, err = m.Fire(ctx, auth.EventCallback, nil)
	require.Error(t, err, "a callback is accepted once")

	stage, err = m.Fire(ctx, auth.EventExchange, nil)
	require.NoError(t, err)
	assert.Equal(t, auth.StageExchanged, stage)
}

func TestFlow_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	f := auth.Flow{CreatedAt: now.Add(-5 * time.Minute)}
	assert.False(t, f.Expired(now, 10*time.Minute))
	assert.True(t, f.Expired(now, 4*time.Minute))
	assert.False(t, f.Expired(now, 0))
}

func TestCookieFlowStore(t *testing.T) {
	t.Parallel()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	store := auth.NewCookieFlowStore(cookies, "flow", 10*time.Minute, true)
	ctx := context.Background()

	in := auth.Flow{State: "s", Verifier: "v", CallbackURL: "http://localhost:3002/", Stage: auth.StageInitiated, CreatedAt: time.Unix(1700000000, 0).UTC()}
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(ctx, rec, in))

	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, "flow", set[0].Name)
	assert.Equal(t, 600, set[0].MaxAge)
	assert.True(t, set[0].Secure)
	assert.True(t, set[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, set[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	req.AddCookie(set[0])
	out, err := store.Load(ctx, req, "ignored")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = store.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil), "s")
	assert.ErrorIs(t, err, auth.ErrFlowNotFound)

	rec = httptest.NewRecorder()
	require.NoError(t, store.Delete(ctx, rec, out))
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestRedisFlowStore(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := auth.NewRedisFlowStore(client, "test:flow:"+uuid.NewString()+":", time.Minute)

	in := auth.Flow{State: "state-1", Verifier: "v", Stage: auth.StageInitiated, CreatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, nil, in))

	out, err := store.Load(ctx, nil, "state-1")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = store.Load(ctx, nil, "other")
	assert.ErrorIs(t, err, auth.ErrFlowNotFound)

	require.NoError(t, store.Delete(ctx, nil, out))
	assert.ErrorIs(t, store.Delete(ctx, nil, out), auth.ErrFlowConsumed)

	_, err = store.Load(ctx, nil, "state-1")
	assert.ErrorIs(t, err, auth.ErrFlowNotFound)
}
