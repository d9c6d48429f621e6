// Package store persists the per-character statistics table between runs.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/verte-zerg/typedrill/internal/model"
)

const (
	// BackendTOML stores stats in a human-readable TOML file.
	BackendTOML = "toml"
	// BackendSQLite stores stats in a single SQLite table.
	BackendSQLite = "sqlite"
)

var (
	// ErrStatsUnavailable marks a missing or unreadable stats store.
	ErrStatsUnavailable = errors.New("stats unavailable")
	// ErrStatsPersist marks a failure to write stats.
	ErrStatsPersist = errors.New("failed to persist stats")
)

// Store loads and saves the stats table.
type Store interface {
	// Load returns the persisted table. On failure it returns an empty table
	// and an error wrapping ErrStatsUnavailable.
	Load(ctx context.Context) (model.StatsTable, error)
	// Save replaces the persisted table.
	Save(ctx context.Context, table model.StatsTable) error
	Close() error
}

// ValidBackend reports whether name is a known backend.
func ValidBackend(name string) bool {
	return name == BackendTOML || name == BackendSQLite
}

// Open returns the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendTOML, "":
		return OpenTOML(path), nil
	case BackendSQLite:
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown stats backend %q", backend)
	}
}

// Remove deletes the stats file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stats: %w", err)
	}
	return nil
}

func charKey(ch rune) string {
	return string(ch)
}

func parseCharKey(key string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError || size != len(key) {
		return 0, false
	}
	return r, true
}
