// pkg/db/embed.go
package db

import "embed"

// EmbedMigrations holds the goose migrations shared by PostgreSQL and SQLite.
//
//go:embed migrations/*.sql
var EmbedMigrations embed.FS
