// Package storage holds the Postgres repositories for users and generated
// shoots. Schema lives in the migrations subdirectory and is applied with
// goose via pkg/pg.
package storage
