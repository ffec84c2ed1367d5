package root

import "embed"

// Migrations holds the embedded goose migration files applied by the migrate
// command.
//
//go:embed migrations
var Migrations embed.FS
