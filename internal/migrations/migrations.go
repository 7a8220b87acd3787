// Package migrations embeds the goose SQL migrations for the tripkeeper
// schema. Every statement is idempotent (IF NOT EXISTS) so the same
// migrations can be applied to an imported database that was created
// without goose bookkeeping.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
