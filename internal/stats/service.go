package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/metrics"
)

var errInvalidStats = errors.New("invalid stats record")

// Service loads and saves AggregateStats through a Store.
type Service struct {
	store  Store
	logger zerolog.Logger
}

// NewService creates a stats service.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "stats").Logger(),
	}
}

// Load returns the player's stats. Missing records yield zeroed stats, and so
// do invalid ones, which are also deleted. An error is returned only when the
// store cannot be read; the zero value must not be saved over the record then.
func (s *Service) Load(ctx context.Context, playerID uuid.UUID) (AggregateStats, error) {
	agg, err := s.read(ctx, playerID)
	if errors.Is(err, errInvalidStats) {
		log := s.logger.With().Str("player_id", playerID.String()).Logger()
		log.Warn().Err(err).Msg("discarding corrupt stats")
		if err := s.store.Delete(ctx, playerID); err != nil {
			log.Warn().Err(err).Msg("failed to delete corrupt stats")
		}
		return AggregateStats{}, nil
	}
	return agg, err
}

// Peek is Load without side effects: invalid records read as zeroed stats
// and are left in place.
func (s *Service) Peek(ctx context.Context, playerID uuid.UUID) (AggregateStats, error) {
	agg, err := s.read(ctx, playerID)
	if errors.Is(err, errInvalidStats) {
		return AggregateStats{}, nil
	}
	return agg, err
}

func (s *Service) read(ctx context.Context, playerID uuid.UUID) (AggregateStats, error) {
	payload, err := s.store.Load(ctx, playerID)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("stats", "load").Inc()
		return AggregateStats{}, fmt.Errorf("load stats: %w", err)
	}
	if payload == nil {
		return AggregateStats{}, nil
	}

	var agg AggregateStats
	if err := json.Unmarshal(payload, &agg); err != nil {
		return AggregateStats{}, fmt.Errorf("%w: %v", errInvalidStats, err)
	}
	if !agg.Valid() {
		return AggregateStats{}, fmt.Errorf("%w: negative counters", errInvalidStats)
	}
	return agg, nil
}

// Save overwrites the player's stats.
func (s *Service) Save(ctx context.Context, playerID uuid.UUID, agg AggregateStats) error {
	payload, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := s.store.Save(ctx, playerID, payload); err != nil {
		metrics.StorageErrors.WithLabelValues("stats", "save").Inc()
		return err
	}
	return nil
}
