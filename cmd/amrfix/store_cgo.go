//go:build cgo

package main

import "github.com/dusk-indust/amrfix/internal/triplestore"

// newStore opens a Kuzu-backed store when a database path is given, and an
// in-memory store otherwise.
func newStore(dbPath string) (triplestore.Store, error) {
	if dbPath == "" {
		return triplestore.NewMemStore(), nil
	}
	return triplestore.NewKuzuFileStore(dbPath)
}
