package migrations

import "embed"

// Schema holds the numbered SQL files applied by internal/db at startup.
//
//go:embed *.sql
var Schema embed.FS
