// Package migrations embeds the SurrealQL schema files.
package migrations

import "embed"

// FS holds every *.surql file of this directory
//
//go:embed *.surql
var FS embed.FS
