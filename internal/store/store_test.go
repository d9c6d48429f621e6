package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typedrill/internal/model"
)

func sampleTable() model.StatsTable {
	return model.StatsTable{
		'a':  {RollingAvgMs: 120.5, TypedCount: 40, ErrorCount: 2, Score: 126.8},
		' ':  {RollingAvgMs: 90, TypedCount: 35, Score: 90},
		'\n': {RollingAvgMs: 300, TypedCount: 3, ErrorCount: 1, Score: 450},
		'é':  {RollingAvgMs: 410, TypedCount: 1, ErrorCount: 1, Score: 41000},
		'"':  {RollingAvgMs: 200, TypedCount: 5, Score: 200},
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	for _, backend := range []string{BackendTOML, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", "stats."+backend)

			s, err := Open(backend, path)
			require.NoError(t, err)
			require.NoError(t, s.Save(ctx, sampleTable()))
			require.NoError(t, s.Close())

			s, err = Open(backend, path)
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleTable(), got)
		})
	}
}

func TestSaveReplacesTable(t *testing.T) {
	for _, backend := range []string{BackendTOML, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			s, err := Open(backend, filepath.Join(t.TempDir(), "stats"))
			require.NoError(t, err)
			defer func() { _ = s.Close() }()

			require.NoError(t, s.Save(ctx, sampleTable()))
			small := model.StatsTable{'z': {RollingAvgMs: 1, TypedCount: 1, Score: 1}}
			require.NoError(t, s.Save(ctx, small))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, small, got)
		})
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	for _, backend := range []string{BackendTOML, BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			s, err := Open(backend, filepath.Join(t.TempDir(), "absent"))
			require.NoError(t, err)
			defer func() { _ = s.Close() }()

			got, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestLoadCorruptTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chars\nnot toml"), 0o644))

	got, err := OpenTOML(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatsUnavailable)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadSkipsInvalidKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.toml")
	doc := "[chars.ab]\nrolling_avg_ms = 1.0\ntyped_count = 1\nerror_count = 0\nscore = 1.0\n" +
		"[chars.b]\nrolling_avg_ms = 2.0\ntyped_count = 2\nerror_count = 0\nscore = 2.0\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := OpenTOML(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatsTable{'b': {RollingAvgMs: 2, TypedCount: 2, Score: 2}}, got)
}

func TestSaveFailureWrapsPersist(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := OpenTOML(filepath.Join(blocker, "stats.toml")).Save(context.Background(), sampleTable())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatsPersist)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("yaml", filepath.Join(t.TempDir(), "stats"))
	assert.Error(t, err)
	assert.False(t, ValidBackend("yaml"))
	assert.True(t, ValidBackend(BackendSQLite))
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.toml")
	require.NoError(t, OpenTOML(path).Save(context.Background(), sampleTable()))
	require.NoError(t, Remove(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, Remove(path))
}
