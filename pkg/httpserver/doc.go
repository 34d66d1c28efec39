// Package httpserver runs the toast service's HTTP listener.
//
// Server wraps net/http with graceful shutdown on context cancellation or
// SIGINT/SIGTERM, functional options for timeouts and lifecycle hooks, and
// slog logging. Request contexts are cancelled when shutdown begins so
// long-lived Server-Sent Event streams end promptly. The write timeout is
// unset unless configured, since it would also cut those streams.
//
//	srv := httpserver.NewFromConfig(cfg,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(context.Context) error { return registry.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthHandler builds liveness and readiness probe endpoints from Check
// functions such as (*toast.Registry).Check.
package httpserver
