// Package catalog provides read-only access to catalog records for the
// translation service.
//
// The catalog itself is owned by the order/inventory backend; this package
// only implements the narrow read interface the translation service
// consumes: point lookups by id and keyset range scans for pagination.
package catalog

import "github.com/kiranahq/lingocache"

// Store is the catalog read interface.
// This is an alias to the main package interface for convenience.
type Store = lingocache.CatalogStore

// Record is an alias to the main package type.
type Record = lingocache.Record

// ErrNotFound is returned when an id does not exist.
var ErrNotFound = lingocache.ErrRecordNotFound
