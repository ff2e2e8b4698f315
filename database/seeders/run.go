// Package seeders fills an empty database with the demo catalog.
//
// A seeder registers itself from init and runs via RunAll, either at
// server boot or from `ameya seed`:
//
//	func init() {
//		seeders.Register("products", SeedProducts)
//	}
//
// Seeders must be idempotent. Boot runs them on every start, so each
// one checks for existing rows before inserting.
package seeders

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ameya/pkg/logger"
)

// SeederFunc inserts seed rows, returning an error to abort the run.
type SeederFunc func(db *gorm.DB) error

type entry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []entry
)

// Register adds a seeder under a stable name. Call from init.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, entry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and
// stops at the first failure.
func RunAll(db *gorm.DB) error {
	mu.Lock()
	current := make([]entry, len(entries))
	copy(current, entries)
	mu.Unlock()

	for _, e := range current {
		if err := e.fn(db); err != nil {
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		logger.Debug("seeder finished", "name", e.name)
	}
	return nil
}
