package cmd

import (
	"context"
	"log/slog"
	"os"
)

// ContextHandler is a custom slog.Handler that enriches log records with
// application-specific attributes. It embeds a slog.Handler and adds the
// application name and version, as well as the request id carried in the
// context.
type ContextHandler struct {
	slog.Handler
	ver string
	app string
}

// Handle processes a log record by enriching it with context and
// application-specific attributes before delegating to the embedded handler.

//nolint:gocritic // ignore this linting rule
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID, ok := ctx.Value("req_id").(string); ok {
		r.AddAttrs(slog.String("req_id", requestID))
	}

	r.AddAttrs(slog.String("app", h.app), slog.String("ver", h.ver))

	return h.Handler.Handle(ctx, r)
}

// initLogger initializes the default logger for the application using slog.
// It returns an error when the configured log level does not parse.
func initLogger(arg *args) error {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(arg.LogLevel)); err != nil {
		return err
	}

	options := &slog.HandlerOptions{
		Level: logLevel,
	}

	var logHandler slog.Handler
	if arg.TextFormat {
		logHandler = slog.NewTextHandler(os.Stderr, options)
	} else {
		logHandler = slog.NewJSONHandler(os.Stderr, options)
	}

	ctxHandler := &ContextHandler{
		Handler: logHandler,
		ver:     arg.Version,
		app:     "cgiform",
	}

	slog.SetDefault(slog.New(ctxHandler))

	return nil
}
