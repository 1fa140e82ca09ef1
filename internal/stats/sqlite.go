package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteStore keeps stats in a local SQLite file, for single-binary deployments.
type SQLiteStore struct {
	db *sql.DB
	q  queries
}

// OpenSQLite opens or creates the database at path and ensures the schema.
// ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create stats dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, q: newQueries(squirrel.Question)}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the player_stats table when missing.
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS player_stats (
		player_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("create player_stats: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, playerID uuid.UUID) ([]byte, error) {
	query, args, err := s.q.selectPayload(playerID)
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}
	var payload string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return []byte(payload), nil
}

func (s *SQLiteStore) Save(ctx context.Context, playerID uuid.UUID, payload []byte) error {
	query, args, err := s.q.upsert(playerID, payload)
	if err != nil {
		return fmt.Errorf("build stats upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, playerID uuid.UUID) error {
	query, args, err := s.q.delete(playerID)
	if err != nil {
		return fmt.Errorf("build stats delete: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stats: %w", err)
	}
	return nil
}
