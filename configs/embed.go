// Package configs embeds the default game catalog and its JSON schema so the
// binary can start without a configs directory on disk.
package configs

import _ "embed"

// Catalog is the default catalog shipped with the binary
//
//go:embed catalog.json
var Catalog []byte

// CatalogSchema is the JSON schema every catalog file must satisfy
//
//go:embed schemas/catalog.schema.json
var CatalogSchema []byte
