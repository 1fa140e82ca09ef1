package game

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/metrics"
	httperrors "github.com/gokatarajesh/algoquest/pkg/http/errors"
	ws "github.com/gokatarajesh/algoquest/pkg/http/ws"
)

// Handler upgrades quiz WebSocket connections and routes their messages to a
// per-connection Session.
type Handler struct {
	deps     Deps
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a quiz WebSocket handler.
func NewHandler(deps Deps, hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *Handler {
	return &Handler{
		deps:     deps,
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "game_ws").Logger(),
	}
}

// HandleWebSocket serves GET /ws/quiz?player=<uuid>. Without a player id a new
// one is issued and announced in the hello message.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	playerID := uuid.New()
	if raw := r.URL.Query().Get("player"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidPlayerID, "player must be a UUID")
			return
		}
		playerID = parsed
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.HandleConnection(conn, playerID)
}

// HandleConnection runs one connection until the client goes away.
func (h *Handler) HandleConnection(conn *websocket.Conn, playerID uuid.UUID) {
	logger := h.logger.With().Str("player_id", playerID.String()).Logger()
	wsConn := ws.NewConnection(conn, logger)
	h.hub.RegisterConnection(playerID, wsConn)
	metrics.ActiveConnections.Inc()

	go wsConn.WritePump()

	ctx, cancel := context.WithCancel(context.Background())
	sess := NewSession(h.deps, playerID, NewWSPresenter(wsConn, logger))

	if msg, err := ws.NewMessage(ws.TypeHello, ws.HelloPayload{PlayerID: playerID.String()}); err == nil {
		_ = wsConn.Send(msg)
	}
	sess.Boot(ctx)

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(ctx, sess, wsConn, msg)
	})

	cancel()
	sess.Close()
	h.hub.UnregisterConnection(playerID, wsConn)
	metrics.ActiveConnections.Dec()
}

// handleMessage routes incoming WebSocket messages.
func (h *Handler) handleMessage(ctx context.Context, sess *Session, conn Sender, msg ws.Message) error {
	var err error
	switch msg.Type {
	case ws.TypeStartQuiz:
		var req ws.StartQuizPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid start_quiz payload")
		}
		err = sess.Start(ctx, req.Mode)
	case ws.TypeSelectOption:
		var req ws.SelectOptionPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid select_option payload")
		}
		err = sess.Answer(ctx, req.Index)
	case ws.TypeNext:
		err = sess.Next(ctx)
	case ws.TypeBack:
		sess.Back(ctx)
	case ws.TypeGoHome:
		sess.Home(ctx)
	case ws.TypePlayAgain:
		err = sess.PlayAgain(ctx)
	case ws.TypeResume:
		var req ws.ResumePayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid resume payload")
		}
		err = sess.Resume(ctx, req.Accept)
	case ws.TypeFlipCard:
		err = sess.Flip(ctx)
	case ws.TypePrevCard:
		err = sess.PrevCard(ctx)
	case ws.TypeJumpCard:
		var req ws.JumpCardPayload
		if err := msg.Decode(&req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid jump_card payload")
		}
		err = sess.JumpTo(ctx, req.Index)
	case ws.TypeShuffleCards:
		err = sess.Shuffle(ctx)
	default:
		return h.sendError(conn, httperrors.ErrCodeUnknownMessageType, fmt.Sprintf("Unknown message type: %s", msg.Type))
	}
	if err != nil {
		return h.sendError(conn, errorCode(err), err.Error())
	}
	return nil
}

func (h *Handler) sendError(conn Sender, code, message string) error {
	msg, err := ws.NewMessage(ws.TypeError, httperrors.New(code, message))
	if err != nil {
		return err
	}
	return conn.Send(msg)
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownMode):
		return httperrors.ErrCodeUnknownMode
	case errors.Is(err, ErrNoActiveQuiz):
		return httperrors.ErrCodeNoActiveQuiz
	case errors.Is(err, ErrQuizActive):
		return httperrors.ErrCodeQuizAlreadyActive
	case errors.Is(err, ErrNotAnswerable):
		return httperrors.ErrCodeNotAnswerable
	case errors.Is(err, ErrNotAnswered):
		return httperrors.ErrCodeNotAnswered
	case errors.Is(err, ErrInvalidOption):
		return httperrors.ErrCodeInvalidOption
	case errors.Is(err, ErrNotBrowsable):
		return httperrors.ErrCodeNotBrowsable
	case errors.Is(err, ErrInvalidCard):
		return httperrors.ErrCodeInvalidCardIndex
	case errors.Is(err, ErrNotInResults):
		return httperrors.ErrCodeNotInResults
	case errors.Is(err, ErrNoPendingResume):
		return httperrors.ErrCodeNoPendingResume
	default:
		return httperrors.ErrCodeInternalError
	}
}
