package ws

import (
	"encoding/json"
	"fmt"
)

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypeStartQuiz    = "start_quiz"
	TypeSelectOption = "select_option"
	TypeNext         = "next"
	TypeBack         = "back"
	TypePlayAgain    = "play_again"
	TypeGoHome       = "go_home"
	TypeResume       = "resume"
	TypeFlipCard     = "flip_card"
	TypePrevCard     = "prev_card"
	TypeJumpCard     = "jump_card"
	TypeShuffleCards = "shuffle_cards"

	// Server -> Client
	TypeHello              = "hello"
	TypeRenderHome         = "render_home"
	TypeRenderQuestion     = "render_question"
	TypeRenderCard         = "render_card"
	TypeRenderFeedback     = "render_feedback"
	TypeRenderResults      = "render_results"
	TypeRenderResumePrompt = "render_resume_prompt"
	TypeError              = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message. A nil payload is omitted.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", msgType, err)
	}
	msg.Payload = raw
	return msg, nil
}

// Decode unmarshals the payload into v. An empty payload leaves v untouched.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}

// Client Messages (incoming)

type StartQuizPayload struct {
	Mode string `json:"mode"`
}

type SelectOptionPayload struct {
	Index int `json:"index"`
}

type ResumePayload struct {
	Accept bool `json:"accept"`
}

type JumpCardPayload struct {
	Index int `json:"index"`
}

// Server Messages (outgoing)

type HelloPayload struct {
	PlayerID string `json:"player_id"`
}

type StatsPayload struct {
	GamesPlayed int `json:"games_played"`
	BestStreak  int `json:"best_streak"`
	TotalPoints int `json:"total_points"`
}

type BankCountsPayload struct {
	Signal     int `json:"signal"`
	Pattern    int `json:"pattern"`
	Scenario   int `json:"scenario"`
	Complexity int `json:"complexity"`
}

type HomePayload struct {
	Stats  StatsPayload      `json:"stats"`
	Counts BankCountsPayload `json:"counts"`
}

type OptionPayload struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

type QuestionPayload struct {
	Mode       string          `json:"mode"`
	Index      int             `json:"index"`
	Total      int             `json:"total"`
	Prompt     string          `json:"prompt"`
	Difficulty string          `json:"difficulty,omitempty"`
	Points     int             `json:"points,omitempty"`
	Hints      []string        `json:"hints,omitempty"`
	Options    []OptionPayload `json:"options"`
	Score      int             `json:"score"`
	Streak     int             `json:"streak"`
	Answered   bool            `json:"answered"`
}

type CardPayload struct {
	Index       int      `json:"index"`
	Total       int      `json:"total"`
	Pattern     string   `json:"pattern"`
	Signals     []string `json:"signals"`
	AntiSignals []string `json:"anti_signals"`
	Flipped     bool     `json:"flipped"`
}

type FeedbackPayload struct {
	Mode          string `json:"mode"`
	Correct       bool   `json:"correct"`
	SelectedIndex int    `json:"selected_index"`
	CorrectIndex  int    `json:"correct_index"`
	CorrectLabel  string `json:"correct_label"`
	Explanation   string `json:"explanation,omitempty"`
	Awarded       int    `json:"awarded"`
	Score         int    `json:"score"`
	Streak        int    `json:"streak"`
	Last          bool   `json:"last"`
}

type ResultsPayload struct {
	Mode       string `json:"mode"`
	ModeTitle  string `json:"mode_title"`
	Score      int    `json:"score"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Title      string `json:"title"`
}

type ResumePromptPayload struct {
	Mode      string `json:"mode"`
	ModeTitle string `json:"mode_title"`
	Progress  string `json:"progress"`
}
