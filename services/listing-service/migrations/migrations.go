// Package migrations содержит SQL-схему listing-service.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
