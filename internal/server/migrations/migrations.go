// Package migrations embeds the goose migrations of the feed database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
