// Package migrations embeds the goose schema migrations, one directory per
// SQL dialect.
package migrations

import "embed"

const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
