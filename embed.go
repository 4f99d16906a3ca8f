package lawsite

import "embed"

// Migrations holds the goose SQL migrations applied by NewStore.
//
//go:embed migrations/*.sql
var Migrations embed.FS
