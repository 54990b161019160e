//go:build cgo_sqlite

// Build with -tags cgo_sqlite (and CGO_ENABLED=1) to make the "sqlite3"
// driver available.

package sqlexec

import (
	_ "github.com/mattn/go-sqlite3" // CGO SQLite driver
)
