// Package migrations embeds the SQL schema migrations applied by cmd/migrate
// and by the API at startup when MIGRATIONS_AUTO is enabled.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
