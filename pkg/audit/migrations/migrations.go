// Package migrations embeds the audit store schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
