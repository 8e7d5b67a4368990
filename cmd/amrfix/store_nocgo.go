//go:build !cgo

package main

import (
	"fmt"

	"github.com/dusk-indust/amrfix/internal/triplestore"
)

// newStore returns the in-memory store; the Kuzu backend needs cgo.
func newStore(dbPath string) (triplestore.Store, error) {
	if dbPath != "" {
		return nil, fmt.Errorf("--db requires a cgo-enabled build")
	}
	return triplestore.NewMemStore(), nil
}
