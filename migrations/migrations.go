// Package migrations embeds the SQL migrations applied at startup.
package migrations

import "embed"

// FS holds every *.up.sql file, applied in lexical order.
//
//go:embed *.up.sql
var FS embed.FS
