// Package migrations embeds the goose SQL scripts that create the ACL
// schema. The DDL avoids dialect-specific column types so the same scripts
// run on PostgreSQL and SQLite.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
