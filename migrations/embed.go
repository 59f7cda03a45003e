// Package migrations embeds the goose SQL files for the trips and
// itinerary_items tables. tripctl migrate and the integration tests apply them.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to goose.UpFS / goose.DownToFS instead of relying on
// a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS
