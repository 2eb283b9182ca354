// Package configs embeds the default game configuration files.
package configs

import _ "embed"

// Catalog is the default game catalog, used when CATALOG_PATH is unset
//
//go:embed catalog.json
var Catalog []byte
