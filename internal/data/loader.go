package data

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/willfong/mockbank/internal/models"
)

//go:embed seed/db.json
var seedFiles embed.FS

// SeedPath is the name reported for the embedded database.
const SeedPath = "seed/db.json"

var (
	seed     *models.Snapshot
	seedOnce sync.Once
	seedErr  error
)

// Seed returns a fresh copy of the embedded seed database. The file is
// parsed once; every call decodes into new values so callers may mutate
// the result freely.
func Seed() (*models.Snapshot, error) {
	seedOnce.Do(func() {
		raw, err := seedFiles.ReadFile(SeedPath)
		if err != nil {
			seedErr = fmt.Errorf("failed to read %s: %w", SeedPath, err)
			return
		}
		seed, seedErr = Decode(bytes.NewReader(raw), FormatJSON)
		if seedErr != nil {
			seedErr = fmt.Errorf("failed to parse %s: %w", SeedPath, seedErr)
		}
	})
	if seedErr != nil {
		return nil, seedErr
	}
	return clone(seed)
}

// MustSeed is Seed for tests and examples; it panics on error.
func MustSeed() *models.Snapshot {
	snap, err := Seed()
	if err != nil {
		panic(err)
	}
	return snap
}

// clone round-trips through the JSON codec so no slices or pointers are
// shared with the cached seed.
func clone(snap *models.Snapshot) (*models.Snapshot, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, snap, FormatJSON); err != nil {
		return nil, err
	}
	return Decode(&buf, FormatJSON)
}
