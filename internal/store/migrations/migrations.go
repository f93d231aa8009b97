// Package migrations embeds the markup store schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
