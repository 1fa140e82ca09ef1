// Package game runs the per-connection quiz lifecycle: homepage, active quiz,
// results, and resuming a saved session.
package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/algoquest/internal/metrics"
	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/quiz"
	"github.com/gokatarajesh/algoquest/internal/session"
	"github.com/gokatarajesh/algoquest/internal/shuffle"
	"github.com/gokatarajesh/algoquest/internal/stats"
)

// DefaultFinishDelay is how long the feedback of the last answer stays up
// before the results are shown.
const DefaultFinishDelay = 1500 * time.Millisecond

// StatsStore loads and saves a player's aggregate stats. Missing or corrupt
// stats load as zeroed stats; Load fails only when the store is unreachable.
type StatsStore interface {
	Load(ctx context.Context, playerID uuid.UUID) (stats.AggregateStats, error)
	Save(ctx context.Context, playerID uuid.UUID, agg stats.AggregateStats) error
}

// Deps are the collaborators shared by every Session.
type Deps struct {
	Banks       *question.Banks
	Sessions    *session.Manager
	Stats       StatsStore
	Scoring     quiz.ScoringConfig
	FinishDelay time.Duration
	Source      shuffle.Source
	Logger      zerolog.Logger
}

// Session is the quiz state of one connected page. All methods are safe for
// concurrent use; they are serialized internally.
type Session struct {
	mu sync.Mutex

	playerID  uuid.UUID
	deps      Deps
	presenter Presenter
	logger    zerolog.Logger

	signal     *quiz.Track[question.SignalQuestion]
	pattern    *quiz.Track[question.PatternCard]
	scenario   *quiz.Track[question.Scenario]
	complexity *quiz.Track[question.ComplexityQuestion]

	view     quiz.View
	lastMode quiz.Mode
	options  []quiz.Option
	stats    stats.AggregateStats
	pending  *session.Snapshot

	// statsLoaded is false while stats only hold what this session added
	// because the stored record could not be read.
	statsLoaded bool

	// generation invalidates scheduled finishes once the player moves on.
	generation uint64
	timer      *time.Timer
	closed     bool
}

// NewSession creates a session on the homepage. Call Boot before anything else.
func NewSession(deps Deps, playerID uuid.UUID, presenter Presenter) *Session {
	banks := deps.Banks
	return &Session{
		playerID:   playerID,
		deps:       deps,
		presenter:  presenter,
		logger:     deps.Logger.With().Str("component", "game").Str("player_id", playerID.String()).Logger(),
		signal:     quiz.NewTrack(quiz.NewEngine(quiz.SignalSpec(deps.Scoring), banks.Signal, banks.Names, deps.Source)),
		pattern:    quiz.NewTrack(quiz.NewEngine(quiz.PatternSpec(), banks.Pattern, banks.Names, deps.Source)),
		scenario:   quiz.NewTrack(quiz.NewEngine(quiz.ScenarioSpec(deps.Scoring), banks.Scenario, banks.Names, deps.Source)),
		complexity: quiz.NewTrack(quiz.NewEngine(quiz.ComplexitySpec(deps.Scoring), banks.Complexity, banks.Names, deps.Source)),
		view:       quiz.ViewHomepage,
	}
}

// PlayerID returns the player the session belongs to.
func (s *Session) PlayerID() uuid.UUID {
	return s.playerID
}

// View returns the current view.
func (s *Session) View() quiz.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Stats returns a copy of the player's aggregate stats.
func (s *Session) Stats() stats.AggregateStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Boot loads stats and any saved session, then renders the homepage. A
// resumable session is held back and offered with a resume prompt.
func (s *Session) Boot(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadStats(ctx)
	s.presenter.RenderHome(s.stats, s.deps.Banks.Counts())

	snap, err := s.deps.Sessions.Load(ctx, s.playerID)
	if err != nil {
		s.storageFailed(err, "load")
		return
	}
	if snap == nil {
		return
	}
	if !session.HasResumable(snap) {
		s.clearSaved(ctx)
		return
	}

	mode, _ := snap.Mode()
	s.pending = snap
	s.logger.Debug().Str("mode", string(mode)).Msg("offering resume")
	s.presenter.RenderResumePrompt(mode, snap.Progress())
}

// Resume answers the resume prompt. Accepting restores every mode's run and
// re-enters the saved view; declining discards the saved session.
func (s *Session) Resume(ctx context.Context, accept bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.pending
	if snap == nil {
		return ErrNoPendingResume
	}
	s.pending = nil

	if !accept {
		metrics.Resumes.WithLabelValues("declined").Inc()
		s.clearSaved(ctx)
		s.presenter.RenderHome(s.stats, s.deps.Banks.Counts())
		return nil
	}

	mode, _ := snap.Mode()
	s.signal.Run = snap.Signal
	s.pattern.Run = snap.Pattern
	s.scenario.Run = snap.Scenario
	s.complexity.Run = snap.Complexity

	d := s.driver(mode)
	if err := d.Validate(); err != nil {
		s.logger.Warn().Err(err).Str("mode", string(mode)).Msg("discarding invalid saved run")
		metrics.SessionsDiscarded.WithLabelValues("invalid").Inc()
		s.resetRuns()
		s.clearSaved(ctx)
		s.presenter.RenderHome(s.stats, s.deps.Banks.Counts())
		return nil
	}

	metrics.Resumes.WithLabelValues("accepted").Inc()
	s.view = snap.CurrentView
	s.lastMode = mode
	s.generation++
	s.render(d)

	if d.Answerable() && d.Answered() {
		if out, selected, ok := d.Replay(); ok {
			s.presenter.RenderFeedback(out, selected, s.options)
		}
		if d.IsLast() {
			s.scheduleFinish(d)
		}
	}
	return nil
}

// Start begins a fresh run of mode from the homepage or the results view.
// A pending resume prompt is dropped.
func (s *Session) Start(ctx context.Context, mode string) error {
	m, err := quiz.ParseMode(mode)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.IsQuiz() {
		return ErrQuizActive
	}
	s.start(ctx, m)
	return nil
}

func (s *Session) start(ctx context.Context, mode quiz.Mode) {
	s.pending = nil
	s.generation++

	d := s.driver(mode)
	d.Start()
	s.view = mode.View()
	s.lastMode = mode

	metrics.QuizzesStarted.WithLabelValues(string(mode)).Inc()
	s.render(d)
	s.persist(ctx)
}

// Answer submits the option at index of the question on screen. Answers to an
// already answered question are ignored.
func (s *Session) Answer(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.active()
	if err != nil {
		return err
	}
	if !d.Answerable() {
		return ErrNotAnswerable
	}
	if d.Answered() {
		return nil
	}
	if index < 0 || index >= len(s.options) {
		return ErrInvalidOption
	}

	best := s.stats.BestStreak
	out, accepted := d.Submit(s.options[index], &s.stats)
	if !accepted {
		return nil
	}
	metrics.Answers.WithLabelValues(string(out.Mode), metrics.Result(out.Correct)).Inc()

	s.persist(ctx)
	if s.stats.BestStreak > best {
		s.saveStats(ctx)
	}
	s.presenter.RenderFeedback(out, index, s.options)

	if out.Last {
		s.scheduleFinish(d)
	}
	return nil
}

// Next moves to the next question, or finishes the run when the last
// question has been answered. In flashcard mode it shows the next card.
func (s *Session) Next(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.active()
	if err != nil {
		return err
	}
	if !d.Answerable() {
		if d.Step(1) {
			s.persist(ctx)
		}
		s.render(d)
		return nil
	}
	if !d.Answered() {
		return ErrNotAnswered
	}
	if !d.Advance() {
		s.finish(ctx, d)
		return nil
	}
	s.render(d)
	s.persist(ctx)
	return nil
}

// PlayAgain restarts the mode just finished.
func (s *Session) PlayAgain(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view != quiz.ViewResults {
		return ErrNotInResults
	}
	s.start(ctx, s.lastMode)
	return nil
}

// Back leaves the current quiz for the homepage. The saved session is dropped.
func (s *Session) Back(ctx context.Context) {
	s.Home(ctx)
}

// Home returns to the homepage from any view and drops the saved session.
func (s *Session) Home(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.pending = nil
	s.view = quiz.ViewHomepage
	s.options = nil
	s.clearSaved(ctx)
	s.presenter.RenderHome(s.stats, s.deps.Banks.Counts())
}

// Flip turns the current flashcard over.
func (s *Session) Flip(ctx context.Context) error {
	return s.browse(ctx, func(d quiz.Driver) error {
		d.Flip()
		return nil
	})
}

// PrevCard shows the previous flashcard. The first card stays put.
func (s *Session) PrevCard(ctx context.Context) error {
	return s.browse(ctx, func(d quiz.Driver) error {
		d.Step(-1)
		return nil
	})
}

// JumpTo shows the flashcard at index.
func (s *Session) JumpTo(ctx context.Context, index int) error {
	return s.browse(ctx, func(d quiz.Driver) error {
		if !d.JumpTo(index) {
			return ErrInvalidCard
		}
		return nil
	})
}

// Shuffle reshuffles the flashcard deck and shows its first card.
func (s *Session) Shuffle(ctx context.Context) error {
	return s.browse(ctx, func(d quiz.Driver) error {
		d.Reshuffle()
		return nil
	})
}

func (s *Session) browse(ctx context.Context, action func(quiz.Driver) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.active()
	if err != nil {
		return err
	}
	if d.Answerable() {
		return ErrNotBrowsable
	}
	if err := action(d); err != nil {
		return err
	}
	s.persist(ctx)
	s.render(d)
	return nil
}

// Close cancels any scheduled finish. The saved session is kept for resuming.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) scheduleFinish(d quiz.Driver) {
	delay := s.deps.FinishDelay
	if delay <= 0 {
		s.finish(context.Background(), d)
		return
	}

	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.closed || s.generation != gen || s.view != d.Mode().View() {
			return
		}
		s.finish(context.Background(), d)
	})
}

func (s *Session) finish(ctx context.Context, d quiz.Driver) {
	s.generation++
	summary := d.Finish(&s.stats)
	metrics.QuizzesFinished.WithLabelValues(string(summary.GameType)).Inc()

	s.saveStats(ctx)
	s.clearSaved(ctx)
	s.view = quiz.ViewResults
	s.options = nil

	s.logger.Info().
		Str("mode", string(summary.GameType)).
		Int("score", summary.Score).
		Int("percentage", summary.Percentage).
		Msg("quiz finished")
	s.presenter.RenderResults(summary)
}

// render shows the current item of d. Questions keep the option set stored
// in the run, so re-rendering an item never reshuffles it.
func (s *Session) render(d quiz.Driver) {
	frame := d.Frame()
	if !d.Answerable() {
		s.options = nil
		s.presenter.RenderCard(frame)
		return
	}
	s.options = d.Options()
	s.presenter.RenderQuestion(frame, s.options)
}

func (s *Session) active() (quiz.Driver, error) {
	mode, ok := s.view.Mode()
	if !ok {
		return nil, ErrNoActiveQuiz
	}
	return s.driver(mode), nil
}

func (s *Session) driver(mode quiz.Mode) quiz.Driver {
	switch mode {
	case quiz.ModePattern:
		return s.pattern
	case quiz.ModeScenario:
		return s.scenario
	case quiz.ModeComplexity:
		return s.complexity
	default:
		return s.signal
	}
}

func (s *Session) resetRuns() {
	s.signal.Run = quiz.Run[question.SignalQuestion]{}
	s.pattern.Run = quiz.Run[question.PatternCard]{}
	s.scenario.Run = quiz.Run[question.Scenario]{}
	s.complexity.Run = quiz.Run[question.ComplexityQuestion]{}
}

func (s *Session) snapshot() *session.Snapshot {
	return &session.Snapshot{
		CurrentView: s.view,
		Signal:      s.signal.Run,
		Pattern:     s.pattern.Run,
		Scenario:    s.scenario.Run,
		Complexity:  s.complexity.Run,
	}
}

func (s *Session) persist(ctx context.Context) {
	if err := s.deps.Sessions.Save(ctx, s.playerID, s.snapshot()); err != nil {
		s.storageFailed(err, "save")
	}
}

func (s *Session) clearSaved(ctx context.Context) {
	if err := s.deps.Sessions.Clear(ctx, s.playerID); err != nil {
		s.storageFailed(err, "clear")
	}
}

func (s *Session) loadStats(ctx context.Context) {
	agg, err := s.deps.Stats.Load(ctx, s.playerID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stats unavailable, saving is deferred until they can be read")
		s.stats = stats.AggregateStats{}
		s.statsLoaded = false
		return
	}
	s.stats = agg
	s.statsLoaded = true
}

// saveStats writes the stats. When the stored record could not be read at
// boot it is read again first and this session's progress is merged into it.
func (s *Session) saveStats(ctx context.Context) {
	if !s.statsLoaded {
		stored, err := s.deps.Stats.Load(ctx, s.playerID)
		if err != nil {
			s.logger.Warn().Err(err).Msg("stats still unavailable, not saving")
			return
		}
		s.stats = stored.Merge(s.stats)
		s.statsLoaded = true
	}
	if err := s.deps.Stats.Save(ctx, s.playerID, s.stats); err != nil {
		s.logger.Warn().Err(err).Msg("failed to save stats")
	}
}

func (s *Session) storageFailed(err error, op string) {
	metrics.StorageErrors.WithLabelValues("session", op).Inc()
	s.logger.Warn().Err(err).Str("op", op).Msg("session storage failed, continuing in memory")
}
