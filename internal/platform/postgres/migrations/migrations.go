// Package migrations embeds the goose SQL migrations for the tasks schema so
// the server binary and the test harness apply the same files.
package migrations

import "embed"

// FS holds every *.sql migration in this directory.
//
//go:embed *.sql
var FS embed.FS

// Dir is the directory within FS that goose should read.
const Dir = "."

// TableName is the goose version table shared by the server and tests.
const TableName = "schema_migrations"
