// Package session saves and restores a player's in-progress quiz state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/metrics"
)

// DefaultTTL is how long a saved session stays resumable.
const DefaultTTL = 24 * time.Hour

// MaxClockSkew is how far in the future a saved timestamp may lie before the
// record is treated as corrupt.
const MaxClockSkew = time.Minute

// ErrInactiveView is returned when saving a snapshot outside a quiz view.
var ErrInactiveView = errors.New("session: snapshot view is not a quiz view")

// Manager applies the save/load protocol on top of a Store.
type Manager struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewManager creates a Manager. A ttl <= 0 uses DefaultTTL.
func NewManager(store Store, ttl time.Duration, logger zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// WithClock replaces the time source used for stamping and expiry.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// TTL returns the resumable window.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Save stamps snap with the current time and overwrites the player's record.
func (m *Manager) Save(ctx context.Context, playerID uuid.UUID, snap *Snapshot) error {
	if !snap.CurrentView.IsQuiz() {
		return ErrInactiveView
	}
	snap.Timestamp = m.now().UnixMilli()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return m.store.Set(ctx, playerID, data, m.ttl)
}

// Load returns the player's snapshot, or nil when none is stored. Unparseable
// and expired records, and records stamped more than MaxClockSkew in the
// future, are deleted and reported as absent.
func (m *Manager) Load(ctx context.Context, playerID uuid.UUID) (*Snapshot, error) {
	data, err := m.store.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		m.logger.Warn().Err(err).Str("player_id", playerID.String()).Msg("discarding corrupt session")
		m.discard(ctx, playerID, "corrupt")
		return nil, nil
	}

	age := m.now().Sub(snap.SavedAt())
	if age < -MaxClockSkew {
		m.logger.Warn().Dur("age", age).Str("player_id", playerID.String()).Msg("discarding session saved in the future")
		m.discard(ctx, playerID, "corrupt")
		return nil, nil
	}
	if age > m.ttl {
		m.logger.Debug().Dur("age", age).Str("player_id", playerID.String()).Msg("discarding expired session")
		m.discard(ctx, playerID, "expired")
		return nil, nil
	}
	return &snap, nil
}

// Clear deletes the player's record.
func (m *Manager) Clear(ctx context.Context, playerID uuid.UUID) error {
	return m.store.Delete(ctx, playerID)
}

func (m *Manager) discard(ctx context.Context, playerID uuid.UUID, reason string) {
	metrics.SessionsDiscarded.WithLabelValues(reason).Inc()
	if err := m.store.Delete(ctx, playerID); err != nil {
		m.logger.Warn().Err(err).Str("player_id", playerID.String()).Msg("failed to delete discarded session")
	}
}
