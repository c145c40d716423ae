package migrations

import "embed"

// FS migraciones SQL embebidas del esquema de identidad.
//
//go:embed *.sql
var FS embed.FS
