// Package db provides the embedded catalog seed data.
package db

import _ "embed"

// CatalogSeed contains the gzipped JSON product catalog loaded at startup.
//
//go:embed seed/products.json.gz
var CatalogSeed []byte
