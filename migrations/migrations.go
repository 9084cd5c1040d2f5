// Package migrations embeds the SQL schema so the server can apply it on boot.
package migrations

import "embed"

// FS holds the *.up.sql and *.down.sql files.
//
//go:embed *.sql
var FS embed.FS
