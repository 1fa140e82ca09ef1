package stats

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// Store persists the raw stats payload of each player. Records never expire.
// Load returns nil, nil when the player has no record.
type Store interface {
	Load(ctx context.Context, playerID uuid.UUID) ([]byte, error)
	Save(ctx context.Context, playerID uuid.UUID, payload []byte) error
	Delete(ctx context.Context, playerID uuid.UUID) error
}

const table = "player_stats"

// queries builds the three statements both SQL stores share.
type queries struct {
	sb squirrel.StatementBuilderType
}

func newQueries(format squirrel.PlaceholderFormat) queries {
	return queries{sb: squirrel.StatementBuilder.PlaceholderFormat(format)}
}

func (q queries) selectPayload(playerID uuid.UUID) (string, []any, error) {
	return q.sb.Select("payload").
		From(table).
		Where(squirrel.Eq{"player_id": playerID.String()}).
		ToSql()
}

func (q queries) upsert(playerID uuid.UUID, payload []byte) (string, []any, error) {
	return q.sb.Insert(table).
		Columns("player_id", "payload", "updated_at").
		Values(playerID.String(), string(payload), squirrel.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT (player_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
}

func (q queries) delete(playerID uuid.UUID) (string, []any, error) {
	return q.sb.Delete(table).
		Where(squirrel.Eq{"player_id": playerID.String()}).
		ToSql()
}
