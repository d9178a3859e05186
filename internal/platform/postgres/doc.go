// Package postgres provides PostgreSQL implementations of the store
// interfaces, using database/sql with the pgx driver. Schema migrations are
// embedded and applied with goose at startup.
package postgres
