package httpserver

import (
	"log/slog"
	"time"
)

type Option func(*options)

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
	onStart         []func()
	onStop          []func()
}

func WithAddr(addr string) Option {
	return func(o *options) {
		if addr != "" {
			o.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(o *options) { o.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) { o.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(o *options) { o.idleTimeout = d }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStartHook registers fn to run right before the listener starts.
func WithStartHook(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.onStart = append(o.onStart, fn)
		}
	}
}

// WithStopHook registers fn to run after graceful shutdown completes.
func WithStopHook(fn func()) Option {
	return func(o *options) {
		if fn != nil {
			o.onStop = append(o.onStop, fn)
		}
	}
}
