// Package migrations embebe los archivos SQL para goose (server y tests de integración).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
