// Package httpserver wraps net/http.Server with graceful shutdown and the
// liveness/readiness handlers the dashboard mounts at /healthz and /readyz.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns when ctx is cancelled or the process receives SIGINT or
// SIGTERM. In-flight requests get up to ShutdownTimeout to complete.
package httpserver
