package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgQuerier is the subset of *pgxpool.Pool the Postgres store uses.
type pgQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps stats in the player_stats table (see db/migrations).
type PostgresStore struct {
	db pgQuerier
	q  queries
}

// NewPostgresStore creates a store over a pgx pool.
func NewPostgresStore(db pgQuerier) *PostgresStore {
	return &PostgresStore{db: db, q: newQueries(squirrel.Dollar)}
}

func (s *PostgresStore) Load(ctx context.Context, playerID uuid.UUID) ([]byte, error) {
	query, args, err := s.q.selectPayload(playerID)
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}
	var payload []byte
	if err := s.db.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load stats: %w", err)
	}
	return payload, nil
}

func (s *PostgresStore) Save(ctx context.Context, playerID uuid.UUID, payload []byte) error {
	query, args, err := s.q.upsert(playerID, payload)
	if err != nil {
		return fmt.Errorf("build stats upsert: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, playerID uuid.UUID) error {
	query, args, err := s.q.delete(playerID)
	if err != nil {
		return fmt.Errorf("build stats delete: %w", err)
	}
	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete stats: %w", err)
	}
	return nil
}
