package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/typedrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps the stats table in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database and applies migrations.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS char_stats (
			char TEXT PRIMARY KEY,
			rolling_avg_ms REAL NOT NULL,
			typed_count INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			score REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_char_stats_score ON char_stats(score);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Load reads every row into a table.
func (s *SQLiteStore) Load(ctx context.Context) (model.StatsTable, error) {
	table := model.StatsTable{}
	rows, err := s.db.QueryContext(ctx,
		`SELECT char, rolling_avg_ms, typed_count, error_count, score FROM char_stats`)
	if err != nil {
		return table, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var key string
		var typed, errs int64
		var stat model.CharStat
		if err := rows.Scan(&key, &stat.RollingAvgMs, &typed, &errs, &stat.Score); err != nil {
			return model.StatsTable{}, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
		}
		ch, ok := parseCharKey(key)
		if !ok {
			continue
		}
		stat.TypedCount = uint64(typed)
		stat.ErrorCount = uint64(errs)
		table[ch] = stat
	}
	if err := rows.Err(); err != nil {
		return model.StatsTable{}, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
	return table, nil
}

// Save replaces all rows with table in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, table model.StatsTable) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM char_stats`); err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO char_stats (char, rolling_avg_ms, typed_count, error_count, score)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for ch, stat := range table {
		if _, err = stmt.ExecContext(ctx, charKey(ch), stat.RollingAvgMs,
			int64(stat.TypedCount), int64(stat.ErrorCount), stat.Score); err != nil {
			return fmt.Errorf("%w: %v", ErrStatsPersist, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrStatsPersist, err)
	}
	return nil
}
