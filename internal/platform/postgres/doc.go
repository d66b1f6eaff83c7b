// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx driver. It also embeds the goose schema
// migrations and maps PostgreSQL error codes onto store errors.
package postgres
