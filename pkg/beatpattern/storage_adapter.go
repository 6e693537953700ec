//go:build !js && !wasm
// +build !js,!wasm

package beatpattern

import (
	"github.com/himanishpuri/BeatPattern/pkg/beatpattern/storage"
)

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return storage.NewDBClientWithPath(dbPath)
}
