// Package migrations embeds the schema for the console's local state
// database (persisted session, collection snapshots).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
