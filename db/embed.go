// Package db provides embedded seed data.
package db

import _ "embed"

// DefaultCatalog is the catalog a store starts with when no catalog file is
// configured. It uses the format read by catalog.Decode.
//
//go:embed seed/catalog.json
var DefaultCatalog []byte
