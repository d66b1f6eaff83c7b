// Package logger configures the application's log/slog logger and carries
// request-scoped loggers through context.Context.
//
// Production output is JSON on stdout. The "text" format switches to a
// colorized, human-readable handler for local development.
package logger
