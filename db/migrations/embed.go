// Package migrations embeds the SQL schema for the rebuild history and task
// progress tables.
package migrations

import "embed"

// Files exposes the compiled-in migration SQL files.
//
//go:embed *.sql
var Files embed.FS
