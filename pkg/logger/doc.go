// Package logger builds *slog.Logger values through functional options and
// provides attribute constructors for the validation domain.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// handler so that request-scoped values stored in a context.Context (for
// example a request id) are added to every record logged with a *Context
// method:
//
//	log := logger.New(
//	    logger.WithEnvironment("production", "signup"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.DebugContext(ctx, "field evaluated", logger.Field("email"), logger.Source("post"))
//
// Discard returns a logger that drops everything; it is the default for
// every component that accepts an optional logger.
package logger
