// Package migrations embeds the contact cache schema migrations so they
// compile into the binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
