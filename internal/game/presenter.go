package game

import (
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/quiz"
	"github.com/gokatarajesh/algoquest/internal/stats"
	ws "github.com/gokatarajesh/algoquest/pkg/http/ws"
)

// Presenter receives every view change of a Session.
type Presenter interface {
	RenderHome(agg stats.AggregateStats, counts question.Counts)
	RenderQuestion(frame quiz.Frame, options []quiz.Option)
	RenderCard(frame quiz.Frame)
	RenderFeedback(out quiz.Outcome, selected int, options []quiz.Option)
	RenderResults(summary quiz.ResultsSummary)
	RenderResumePrompt(mode quiz.Mode, progress string)
}

// Sender is the outbound half of a WebSocket connection.
type Sender interface {
	Send(msg ws.Message) error
}

// WSPresenter renders a Session as protocol messages on one connection.
type WSPresenter struct {
	conn   Sender
	logger zerolog.Logger
}

// NewWSPresenter creates a presenter writing to conn.
func NewWSPresenter(conn Sender, logger zerolog.Logger) *WSPresenter {
	return &WSPresenter{conn: conn, logger: logger}
}

func (p *WSPresenter) RenderHome(agg stats.AggregateStats, counts question.Counts) {
	p.send(ws.TypeRenderHome, ws.HomePayload{
		Stats: ws.StatsPayload{
			GamesPlayed: agg.GamesPlayed,
			BestStreak:  agg.BestStreak,
			TotalPoints: agg.TotalPoints,
		},
		Counts: ws.BankCountsPayload{
			Signal:     counts.Signal,
			Pattern:    counts.Pattern,
			Scenario:   counts.Scenario,
			Complexity: counts.Complexity,
		},
	})
}

func (p *WSPresenter) RenderQuestion(frame quiz.Frame, options []quiz.Option) {
	opts := make([]ws.OptionPayload, len(options))
	for i, o := range options {
		opts[i] = ws.OptionPayload{Index: i, ID: o.ID, Label: o.Label}
	}
	p.send(ws.TypeRenderQuestion, ws.QuestionPayload{
		Mode:       string(frame.Mode),
		Index:      frame.Index,
		Total:      frame.Total,
		Prompt:     frame.Item.Prompt,
		Difficulty: frame.Item.Difficulty,
		Points:     frame.Item.Points,
		Hints:      frame.Item.Hints,
		Options:    opts,
		Score:      frame.Score,
		Streak:     frame.Streak,
		Answered:   frame.Answered,
	})
}

func (p *WSPresenter) RenderCard(frame quiz.Frame) {
	p.send(ws.TypeRenderCard, ws.CardPayload{
		Index:       frame.Index,
		Total:       frame.Total,
		Pattern:     frame.Item.Prompt,
		Signals:     frame.Item.Signals,
		AntiSignals: frame.Item.AntiSignals,
		Flipped:     frame.Flipped,
	})
}

func (p *WSPresenter) RenderFeedback(out quiz.Outcome, selected int, options []quiz.Option) {
	correctIndex := -1
	for i, o := range options {
		if o.IsCorrect {
			correctIndex = i
			break
		}
	}
	p.send(ws.TypeRenderFeedback, ws.FeedbackPayload{
		Mode:          string(out.Mode),
		Correct:       out.Correct,
		SelectedIndex: selected,
		CorrectIndex:  correctIndex,
		CorrectLabel:  out.Answer.Label,
		Explanation:   out.Explanation,
		Awarded:       out.Awarded,
		Score:         out.Score,
		Streak:        out.Streak,
		Last:          out.Last,
	})
}

func (p *WSPresenter) RenderResults(summary quiz.ResultsSummary) {
	p.send(ws.TypeRenderResults, ws.ResultsPayload{
		Mode:       string(summary.GameType),
		ModeTitle:  summary.GameType.Title(),
		Score:      summary.Score,
		Correct:    summary.Correct,
		Total:      summary.Total,
		Percentage: summary.Percentage,
		Title:      summary.Title,
	})
}

func (p *WSPresenter) RenderResumePrompt(mode quiz.Mode, progress string) {
	p.send(ws.TypeRenderResumePrompt, ws.ResumePromptPayload{
		Mode:      string(mode),
		ModeTitle: mode.Title(),
		Progress:  progress,
	})
}

func (p *WSPresenter) send(msgType string, payload any) {
	msg, err := ws.NewMessage(msgType, payload)
	if err != nil {
		p.logger.Error().Err(err).Str("type", msgType).Msg("encode message")
		return
	}
	if err := p.conn.Send(msg); err != nil {
		p.logger.Warn().Err(err).Str("type", msgType).Msg("send message")
	}
}
