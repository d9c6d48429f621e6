package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typedrill/internal/model"
)

type tomlDocument struct {
	Chars map[string]model.CharStat `toml:"chars"`
}

// TOMLStore keeps the stats table in a TOML file keyed by character.
type TOMLStore struct {
	path string
}

// OpenTOML returns a store for the file at path. The file is created on the
// first Save.
func OpenTOML(path string) *TOMLStore {
	return &TOMLStore{path: path}
}

// Load reads the table. A missing file yields an empty table.
func (s *TOMLStore) Load(ctx context.Context) (model.StatsTable, error) {
	table := model.StatsTable{}
	if err := ctx.Err(); err != nil {
		return table, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table, nil
		}
		return table, fmt.Errorf("%w: failed to read %s: %v", ErrStatsUnavailable, s.path, err)
	}
	var doc tomlDocument
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return model.StatsTable{}, fmt.Errorf("%w: failed to parse %s: %v", ErrStatsUnavailable, s.path, err)
	}
	for key, stat := range doc.Chars {
		ch, ok := parseCharKey(key)
		if !ok {
			continue
		}
		table[ch] = stat
	}
	return table, nil
}

// Save writes the table through a temporary file so a failed write leaves
// the previous file intact.
func (s *TOMLStore) Save(ctx context.Context, table model.StatsTable) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	doc := tomlDocument{Chars: make(map[string]model.CharStat, len(table))}
	for ch, stat := range table {
		doc.Chars[charKey(ch)] = stat
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("%w: failed to encode stats: %v", ErrStatsPersist, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	tmp, err := os.CreateTemp(dir, ".stats-*.toml")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		if cerr := tmp.Close(); cerr != nil {
			// Best-effort close on write failure.
			_ = cerr
		}
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	return nil
}

// Close is a no-op; the file is only open during Load and Save.
func (s *TOMLStore) Close() error {
	return nil
}
