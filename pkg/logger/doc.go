// Package logger builds the structured slog.Logger used across toastkit and
// provides attribute helpers that keep key names consistent between packages.
//
// New assembles a text or JSON slog.Handler from functional options and wraps
// it with a decorator that pulls request-scoped attributes (session id,
// request id) out of context.Context on every record.
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "toastd"),
//	    logger.WithContextExtractors(toastui.SessionExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.LogAttrs(ctx, slog.LevelDebug, "toast dismissed",
//	    logger.Component("toast"),
//	    logger.ToastID(id),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
