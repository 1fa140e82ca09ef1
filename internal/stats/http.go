package stats

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/algoquest/pkg/http/errors"
)

// HTTPHandler exposes a player's aggregate stats over REST.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler constructs a stats HTTP handler.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger.With().Str("component", "stats_http").Logger(),
	}
}

// HandleGet responds with the stats of one player.
// Route: GET /v1/stats/{playerID}
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	playerID, err := uuid.Parse(r.PathValue("playerID"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPlayerID, "player id must be a UUID")
		return
	}

	agg, err := h.svc.Peek(r.Context(), playerID)
	if err != nil {
		h.logger.Error().Err(err).Str("player_id", playerID.String()).Msg("stats unavailable")
		httperrors.RespondServiceUnavailable(w, httperrors.ErrCodeServiceUnavailable, "stats are temporarily unavailable")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(agg); err != nil {
		h.logger.Warn().Err(err).Msg("write stats response")
	}
}
