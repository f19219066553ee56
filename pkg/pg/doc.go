// Package pg provides PostgreSQL pool setup for the Lumishot backend:
// retried connection with env-driven configuration, goose migrations over a
// pgx pool, error classification helpers, and a healthcheck probe.
package pg
