// Package migrations embeds the SQL schema for the migrate runner.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
