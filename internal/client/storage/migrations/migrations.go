// Package migrations embeds the goose migrations of the client storage.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
