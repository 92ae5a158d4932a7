package migrations

import "embed"

// Migrations holds the golang-migrate up/down files for the auth database.
//
//go:embed *.sql
var Migrations embed.FS
