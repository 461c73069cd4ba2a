package session

import "embed"

// Migrations holds the schema migrations for the PostgreSQL session
// store. Apply them with db.Migrate before using PgStore.
//
//go:embed migrations/*.sql
var Migrations embed.FS
