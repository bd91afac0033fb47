package httpserver_test

import (
	"context"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axolutions/linkbio-dashboard/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func waitListening(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 3*time.Second, 20*time.Millisecond)
}

func waitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not return")
	}
}

func TestServer_RunUntilContextCancelled(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	var stopped atomic.Bool
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithShutdownTimeout(200*time.Millisecond),
		httpserver.WithStopHook(func() { stopped.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
	}()
	waitListening(t, addr)

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	waitDone(t, done)
	assert.True(t, stopped.Load())
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_ManualShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithStartHook(func() { close(started) }),
	)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()
	<-started

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
	waitDone(t, done)
}

func TestServer_AlreadyRunning(t *testing.T) {
	t.Parallel()

	addr := freeAddr(t)
	started := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithAddr(addr),
		httpserver.WithStartHook(func() { close(started) }),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, nil) }()
	<-started

	err := srv.Run(context.Background(), nil)
	require.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
	assert.ErrorIs(t, err, httpserver.ErrStart)

	cancel()
	waitDone(t, done)
}

func TestServer_StartError(t *testing.T) {
	t.Parallel()

	err := httpserver.New(httpserver.WithAddr(":invalid")).Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestServer_ShutdownBeforeRun(t *testing.T) {
	t.Parallel()

	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestServer_SignalShutdown(t *testing.T) {
	addr := freeAddr(t)
	srv := httpserver.NewFromConfig(httpserver.Config{Addr: addr, ShutdownTimeout: 100 * time.Millisecond})

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()
	waitListening(t, addr)

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))
	waitDone(t, done)
}
