// Package logger builds configured slog loggers: JSON for production
// aggregation, text for development, with env-driven level selection.
package logger
