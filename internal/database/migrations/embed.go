// Package migrations embeds the schema migrations applied by sql-migrate.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
