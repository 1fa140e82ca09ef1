package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/quiz"
	"github.com/gokatarajesh/algoquest/internal/session"
	"github.com/gokatarajesh/algoquest/internal/shuffle"
	"github.com/gokatarajesh/algoquest/internal/stats"
)

type event struct {
	kind     string
	frame    quiz.Frame
	options  []quiz.Option
	outcome  quiz.Outcome
	selected int
	summary  quiz.ResultsSummary
	mode     quiz.Mode
	progress string
	stats    stats.AggregateStats
}

type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) add(e event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) RenderHome(agg stats.AggregateStats, _ question.Counts) {
	r.add(event{kind: "home", stats: agg})
}

func (r *recorder) RenderQuestion(frame quiz.Frame, options []quiz.Option) {
	r.add(event{kind: "question", frame: frame, options: options})
}

func (r *recorder) RenderCard(frame quiz.Frame) {
	r.add(event{kind: "card", frame: frame})
}

func (r *recorder) RenderFeedback(out quiz.Outcome, selected int, options []quiz.Option) {
	r.add(event{kind: "feedback", outcome: out, selected: selected, options: options})
}

func (r *recorder) RenderResults(summary quiz.ResultsSummary) {
	r.add(event{kind: "results", summary: summary})
}

func (r *recorder) RenderResumePrompt(mode quiz.Mode, progress string) {
	r.add(event{kind: "resume", mode: mode, progress: progress})
}

func (r *recorder) last(kind string) (event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].kind == kind {
			return r.events[i], true
		}
	}
	return event{}, false
}

func (r *recorder) count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.kind == kind {
			n++
		}
	}
	return n
}

type memoryStats struct {
	mu   sync.Mutex
	data map[uuid.UUID]stats.AggregateStats
	err  error
	// loadFailures is the number of upcoming Load calls that fail.
	loadFailures int
}

func newMemoryStats() *memoryStats {
	return &memoryStats{data: make(map[uuid.UUID]stats.AggregateStats)}
}

func (m *memoryStats) Load(_ context.Context, id uuid.UUID) (stats.AggregateStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadFailures > 0 {
		m.loadFailures--
		return stats.AggregateStats{}, errors.New("connection refused")
	}
	return m.data[id], nil
}

func (m *memoryStats) Save(_ context.Context, id uuid.UUID, agg stats.AggregateStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[id] = agg
	return nil
}

func (m *memoryStats) get(id uuid.UUID) stats.AggregateStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[id]
}

func testBanks() *question.Banks {
	banks := &question.Banks{Names: question.Names{"algo_0": "Algorithm Zero"}}
	for i := 0; i < 10; i++ {
		banks.Signal = append(banks.Signal, question.SignalQuestion{
			Signal:           fmt.Sprintf("signal %d", i),
			CorrectAlgorithm: fmt.Sprintf("algo_%d", i),
			WrongOptions:     []string{"w1", "w2", "w3"},
			Explanation:      "because",
		})
		banks.Complexity = append(banks.Complexity, question.ComplexityQuestion{
			Question:      fmt.Sprintf("complexity %d", i),
			CorrectAnswer: "O(n)",
			WrongOptions:  []string{"O(1)", "O(log n)", "O(n^2)"},
		})
	}
	for _, a := range []string{"dijkstra", "bfs_graph", "dp_linear", "greedy"} {
		banks.Scenario = append(banks.Scenario, question.Scenario{
			ProblemDescription: "problem " + a,
			Difficulty:         question.DifficultyMedium,
			Points:             15,
			CorrectAnswer:      a,
		})
	}
	for _, p := range []string{"Two pointers", "Sliding window", "BFS"} {
		banks.Pattern = append(banks.Pattern, question.PatternCard{Pattern: p, Signals: []string{"s"}})
	}
	return banks
}

type fixture struct {
	deps     Deps
	store    *session.MemoryStore
	manager  *session.Manager
	stats    *memoryStats
	player   uuid.UUID
	recorder *recorder
	sess     *Session
}

func newFixture(t *testing.T, finishDelay time.Duration) *fixture {
	t.Helper()
	store := session.NewMemoryStore()
	manager := session.NewManager(store, session.DefaultTTL, zerolog.Nop())
	f := &fixture{
		store:   store,
		manager: manager,
		stats:   newMemoryStats(),
		player:  uuid.New(),
	}
	f.deps = Deps{
		Banks:       testBanks(),
		Sessions:    manager,
		Stats:       f.stats,
		Scoring:     quiz.DefaultScoringConfig(),
		FinishDelay: finishDelay,
		Source:      shuffle.NewSeeded(42),
		Logger:      zerolog.Nop(),
	}
	f.reconnect()
	t.Cleanup(func() { f.sess.Close() })
	return f
}

// reconnect simulates a page reload: a fresh Session for the same player.
func (f *fixture) reconnect() {
	if f.sess != nil {
		f.sess.Close()
	}
	f.recorder = &recorder{}
	f.sess = NewSession(f.deps, f.player, f.recorder)
	f.sess.Boot(context.Background())
}

func (f *fixture) saved(t *testing.T) *session.Snapshot {
	t.Helper()
	snap, err := f.manager.Load(context.Background(), f.player)
	require.NoError(t, err)
	return snap
}

func indexOf(options []quiz.Option, correct bool) int {
	for i, o := range options {
		if o.IsCorrect == correct {
			return i
		}
	}
	return -1
}

// answer picks the correct or a wrong option of the question on screen.
func (f *fixture) answer(t *testing.T, correct bool) {
	t.Helper()
	q, ok := f.recorder.last("question")
	require.True(t, ok, "no question rendered")
	require.NoError(t, f.sess.Answer(context.Background(), indexOf(q.options, correct)))
}

func TestBootRendersHomeWithStats(t *testing.T) {
	f := newFixture(t, 0)
	f.stats.data[f.player] = stats.AggregateStats{GamesPlayed: 2, BestStreak: 4, TotalPoints: 55}
	f.reconnect()

	home, ok := f.recorder.last("home")
	require.True(t, ok)
	assert.Equal(t, 2, home.stats.GamesPlayed)
	assert.Equal(t, quiz.ViewHomepage, f.sess.View())
	assert.Zero(t, f.recorder.count("resume"))
}

func TestStartPersistsAndRendersQuestion(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	require.NoError(t, f.sess.Start(ctx, "signal"))

	q, ok := f.recorder.last("question")
	require.True(t, ok)
	assert.Equal(t, quiz.ModeSignal, q.frame.Mode)
	assert.Equal(t, 0, q.frame.Index)
	assert.Equal(t, 10, q.frame.Total)
	require.Len(t, q.options, 4)
	assert.Equal(t, 1, countCorrect(q.options))

	snap := f.saved(t)
	require.NotNil(t, snap)
	assert.Equal(t, quiz.View("signal-quiz"), snap.CurrentView)
	assert.Len(t, snap.Signal.Items, 10)
	assert.False(t, snap.Signal.Answered)
}

func countCorrect(options []quiz.Option) int {
	n := 0
	for _, o := range options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

func TestStartRejectsUnknownModeAndActiveQuiz(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.ErrorIs(t, f.sess.Start(ctx, "trivia"), ErrUnknownMode)
	require.NoError(t, f.sess.Start(ctx, "complexity"))
	assert.ErrorIs(t, f.sess.Start(ctx, "signal"), ErrQuizActive)
	assert.Equal(t, quiz.View("complexity-quiz"), f.sess.View())
}

func TestFullSignalRunAllCorrect(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	f.stats.data[f.player] = stats.AggregateStats{GamesPlayed: 1, TotalPoints: 20, BestStreak: 3}
	f.reconnect()

	require.NoError(t, f.sess.Start(ctx, "signal"))
	for i := 0; i < 10; i++ {
		f.answer(t, true)
		if i < 9 {
			require.NoError(t, f.sess.Next(ctx))
		}
	}

	res, ok := f.recorder.last("results")
	require.True(t, ok)
	assert.Equal(t, 100, res.summary.Score)
	assert.Equal(t, 10, res.summary.Correct)
	assert.Equal(t, 100, res.summary.Percentage)
	assert.Equal(t, "Outstanding!", res.summary.Title)

	assert.Equal(t, quiz.ViewResults, f.sess.View())
	assert.Equal(t, stats.AggregateStats{GamesPlayed: 2, BestStreak: 10, TotalPoints: 120}, f.stats.get(f.player))
	assert.Nil(t, f.saved(t), "finished quiz leaves nothing to resume")
}

func TestAnswerIsIgnoredOnceAnswered(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))

	f.answer(t, true)
	f.answer(t, false)

	assert.Equal(t, 1, f.recorder.count("feedback"))
	fb, _ := f.recorder.last("feedback")
	assert.True(t, fb.outcome.Correct)
	assert.Equal(t, 10, fb.outcome.Score)
}

func TestAnswerValidation(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.ErrorIs(t, f.sess.Answer(ctx, 0), ErrNoActiveQuiz)
	require.NoError(t, f.sess.Start(ctx, "signal"))
	assert.ErrorIs(t, f.sess.Answer(ctx, 4), ErrInvalidOption)
	assert.ErrorIs(t, f.sess.Answer(ctx, -1), ErrInvalidOption)
	assert.ErrorIs(t, f.sess.Next(ctx), ErrNotAnswered)
}

func TestWrongAnswerResetsStreakButKeepsBest(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "complexity"))

	for i := 0; i < 5; i++ {
		f.answer(t, true)
		require.NoError(t, f.sess.Next(ctx))
	}
	f.answer(t, false)

	fb, _ := f.recorder.last("feedback")
	assert.Zero(t, fb.outcome.Streak)
	assert.Equal(t, 5, f.sess.Stats().BestStreak)
	assert.Equal(t, 5, f.stats.get(f.player).BestStreak, "a new best streak is saved right away")
}

func TestScenarioAwardsPoints(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "scenario"))

	q, _ := f.recorder.last("question")
	assert.Equal(t, 15, q.frame.Item.Points)
	assert.Len(t, q.options, 4)

	f.answer(t, true)
	fb, _ := f.recorder.last("feedback")
	assert.Equal(t, 15, fb.outcome.Awarded)
	assert.Zero(t, fb.outcome.Streak)
}

func TestLastAnswerFinishesAfterDelay(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "scenario"))

	for i := 0; i < 3; i++ {
		f.answer(t, false)
		require.NoError(t, f.sess.Next(ctx))
	}
	f.answer(t, true)
	assert.Zero(t, f.recorder.count("results"), "feedback stays up first")

	assert.Eventually(t, func() bool { return f.recorder.count("results") == 1 }, time.Second, 5*time.Millisecond)
	res, _ := f.recorder.last("results")
	assert.Equal(t, 15, res.summary.Score)
	assert.Equal(t, 25, res.summary.Percentage)
	assert.Equal(t, 1, f.stats.get(f.player).GamesPlayed)
}

func TestNextOnLastAnsweredFinishesOnce(t *testing.T) {
	f := newFixture(t, 30*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "scenario"))

	for i := 0; i < 3; i++ {
		f.answer(t, true)
		require.NoError(t, f.sess.Next(ctx))
	}
	f.answer(t, true)
	require.NoError(t, f.sess.Next(ctx))
	assert.Equal(t, 1, f.recorder.count("results"))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, f.recorder.count("results"), "scheduled finish must not fire again")
	assert.Equal(t, 1, f.stats.get(f.player).GamesPlayed)
}

func TestLeavingCancelsScheduledFinish(t *testing.T) {
	f := newFixture(t, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "scenario"))

	for i := 0; i < 3; i++ {
		f.answer(t, true)
		require.NoError(t, f.sess.Next(ctx))
	}
	f.answer(t, true)
	f.sess.Home(ctx)

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, f.recorder.count("results"))
	assert.Equal(t, quiz.ViewHomepage, f.sess.View())
	assert.Zero(t, f.stats.get(f.player).GamesPlayed)
	assert.Nil(t, f.saved(t))
}

func TestPlayAgain(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.ErrorIs(t, f.sess.PlayAgain(ctx), ErrNotInResults)

	require.NoError(t, f.sess.Start(ctx, "scenario"))
	for i := 0; i < 4; i++ {
		f.answer(t, true)
		if i < 3 {
			require.NoError(t, f.sess.Next(ctx))
		}
	}
	require.Equal(t, quiz.ViewResults, f.sess.View())

	require.NoError(t, f.sess.PlayAgain(ctx))
	assert.Equal(t, quiz.View("scenario-quiz"), f.sess.View())
	q, _ := f.recorder.last("question")
	assert.Equal(t, 0, q.frame.Index)
	assert.Zero(t, q.frame.Score)
}

func TestResumeAcceptRestoresProgress(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))
	for i := 0; i < 3; i++ {
		f.answer(t, true)
		require.NoError(t, f.sess.Next(ctx))
	}
	before := f.saved(t)

	f.reconnect()
	prompt, ok := f.recorder.last("resume")
	require.True(t, ok)
	assert.Equal(t, quiz.ModeSignal, prompt.mode)
	assert.Equal(t, "Question 4 of 10", prompt.progress)
	assert.Equal(t, quiz.ViewHomepage, f.sess.View())

	require.NoError(t, f.sess.Resume(ctx, true))
	assert.Equal(t, quiz.View("signal-quiz"), f.sess.View())

	q, ok := f.recorder.last("question")
	require.True(t, ok)
	assert.Equal(t, 3, q.frame.Index)
	assert.Equal(t, 30, q.frame.Score)
	assert.Equal(t, 3, q.frame.Streak)
	assert.Equal(t, before.Signal.Items[3].Signal, q.frame.Item.Prompt)

	assert.ErrorIs(t, f.sess.Resume(ctx, true), ErrNoPendingResume)
}

func TestResumeDeclineClears(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "complexity"))

	f.reconnect()
	require.NoError(t, f.sess.Resume(ctx, false))

	assert.Equal(t, quiz.ViewHomepage, f.sess.View())
	assert.Nil(t, f.saved(t))
	assert.Equal(t, 2, f.recorder.count("home"))
}

func TestResumeAnsweredLastQuestionFinishes(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "scenario"))
	for i := 0; i < 3; i++ {
		f.answer(t, true)
		require.NoError(t, f.sess.Next(ctx))
	}
	f.answer(t, true)

	f.deps.FinishDelay = 0
	f.reconnect()
	require.NoError(t, f.sess.Resume(ctx, true))

	q, ok := f.recorder.last("question")
	require.True(t, ok)
	assert.True(t, q.frame.Answered)

	res, ok := f.recorder.last("results")
	require.True(t, ok)
	assert.Equal(t, 60, res.summary.Score)
	assert.Equal(t, quiz.ViewResults, f.sess.View())
}

func TestResumeInvalidRunIsDiscarded(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	snap := &session.Snapshot{
		CurrentView: quiz.ModeSignal.View(),
		Signal: quiz.Run[question.SignalQuestion]{
			Items:        testBanks().Signal[:2],
			CurrentIndex: 7,
		},
	}
	require.NoError(t, f.manager.Save(ctx, f.player, snap))

	f.reconnect()
	require.Equal(t, 1, f.recorder.count("resume"))
	require.NoError(t, f.sess.Resume(ctx, true))

	assert.Equal(t, quiz.ViewHomepage, f.sess.View())
	assert.Zero(t, f.recorder.count("question"))
	assert.Nil(t, f.saved(t))
}

func TestExpiredSessionIsNotOffered(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	now := time.Now()
	f.manager.WithClock(func() time.Time { return now })
	require.NoError(t, f.sess.Start(ctx, "signal"))

	now = now.Add(25 * time.Hour)
	f.reconnect()

	assert.Zero(t, f.recorder.count("resume"))
	raw, err := f.store.Get(ctx, f.player)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestStartDropsPendingResume(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))

	f.reconnect()
	require.NoError(t, f.sess.Start(ctx, "complexity"))
	assert.ErrorIs(t, f.sess.Resume(ctx, true), ErrNoPendingResume)
	assert.Equal(t, quiz.View("complexity-quiz"), f.saved(t).CurrentView)
}

func TestPatternBrowsing(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	assert.ErrorIs(t, f.sess.Flip(ctx), ErrNoActiveQuiz)
	require.NoError(t, f.sess.Start(ctx, "pattern"))

	card, ok := f.recorder.last("card")
	require.True(t, ok)
	assert.Equal(t, "Two pointers", card.frame.Item.Prompt, "deck starts in bank order")
	assert.Equal(t, 3, card.frame.Total)

	require.NoError(t, f.sess.Flip(ctx))
	card, _ = f.recorder.last("card")
	assert.True(t, card.frame.Flipped)
	assert.True(t, f.saved(t).Pattern.IsFlipped)

	require.NoError(t, f.sess.Next(ctx))
	card, _ = f.recorder.last("card")
	assert.Equal(t, 1, card.frame.Index)
	assert.False(t, card.frame.Flipped)

	require.NoError(t, f.sess.PrevCard(ctx))
	require.NoError(t, f.sess.PrevCard(ctx))
	card, _ = f.recorder.last("card")
	assert.Equal(t, 0, card.frame.Index, "no wrap before the first card")

	require.NoError(t, f.sess.JumpTo(ctx, 2))
	assert.ErrorIs(t, f.sess.JumpTo(ctx, 3), ErrInvalidCard)
	require.NoError(t, f.sess.Next(ctx))
	card, _ = f.recorder.last("card")
	assert.Equal(t, 2, card.frame.Index, "no wrap after the last card")
	assert.Equal(t, 2, f.saved(t).Pattern.CurrentIndex)

	require.NoError(t, f.sess.Shuffle(ctx))
	card, _ = f.recorder.last("card")
	assert.Equal(t, 0, card.frame.Index)

	assert.ErrorIs(t, f.sess.Answer(ctx, 0), ErrNotAnswerable)
	assert.Zero(t, f.recorder.count("results"))
}

func TestCardActionsNeedFlashcards(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))

	assert.ErrorIs(t, f.sess.Flip(ctx), ErrNotBrowsable)
	assert.ErrorIs(t, f.sess.Shuffle(ctx), ErrNotBrowsable)
}

func TestPatternResume(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "pattern"))
	require.NoError(t, f.sess.JumpTo(ctx, 1))
	require.NoError(t, f.sess.Flip(ctx))

	f.reconnect()
	prompt, _ := f.recorder.last("resume")
	assert.Equal(t, "Card 2 of 3", prompt.progress)

	require.NoError(t, f.sess.Resume(ctx, true))
	card, ok := f.recorder.last("card")
	require.True(t, ok)
	assert.Equal(t, 1, card.frame.Index)
	assert.True(t, card.frame.Flipped)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, uuid.UUID) ([]byte, error) {
	return nil, errors.New("redis down")
}

func (brokenStore) Set(context.Context, uuid.UUID, []byte, time.Duration) error {
	return errors.New("redis down")
}

func (brokenStore) Delete(context.Context, uuid.UUID) error {
	return errors.New("redis down")
}

func TestStorageFailuresDoNotStopPlay(t *testing.T) {
	f := newFixture(t, 0)
	f.deps.Sessions = session.NewManager(brokenStore{}, 0, zerolog.Nop())
	f.stats.err = errors.New("db down")
	f.reconnect()
	ctx := context.Background()

	require.NoError(t, f.sess.Start(ctx, "scenario"))
	for i := 0; i < 4; i++ {
		f.answer(t, true)
		if i < 3 {
			require.NoError(t, f.sess.Next(ctx))
		}
	}

	res, ok := f.recorder.last("results")
	require.True(t, ok)
	assert.Equal(t, 60, res.summary.Score)
	assert.Equal(t, 1, f.sess.Stats().GamesPlayed, "in-memory stats still advance")
}

func TestBackClearsSession(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))
	f.answer(t, true)

	f.sess.Back(ctx)
	assert.Equal(t, quiz.ViewHomepage, f.sess.View())
	assert.Nil(t, f.saved(t))

	f.reconnect()
	assert.Zero(t, f.recorder.count("resume"))
}

func TestUnreadableStatsAreMergedNotOverwritten(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	f.stats.data[f.player] = stats.AggregateStats{GamesPlayed: 50, BestStreak: 20, TotalPoints: 5000}
	f.stats.loadFailures = 1
	f.reconnect()

	home, _ := f.recorder.last("home")
	assert.Zero(t, home.stats.GamesPlayed)

	require.NoError(t, f.sess.Start(ctx, "scenario"))
	for i := 0; i < 4; i++ {
		f.answer(t, true)
		if i < 3 {
			require.NoError(t, f.sess.Next(ctx))
		}
	}

	require.Equal(t, 1, f.recorder.count("results"))
	want := stats.AggregateStats{GamesPlayed: 51, BestStreak: 20, TotalPoints: 5060}
	assert.Equal(t, want, f.stats.get(f.player))
	assert.Equal(t, want, f.sess.Stats())
}

func TestStatsNotSavedWhileUnreadable(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	stored := stats.AggregateStats{GamesPlayed: 50, BestStreak: 20, TotalPoints: 5000}
	f.stats.data[f.player] = stored
	f.stats.loadFailures = 100
	f.reconnect()

	require.NoError(t, f.sess.Start(ctx, "signal"))
	f.answer(t, true)

	assert.Equal(t, 1, f.sess.Stats().BestStreak)
	assert.Equal(t, stored, f.stats.get(f.player), "a new streak must not overwrite stats that could not be read")
}

func TestResumeAnsweredQuestionReplaysFeedback(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.sess.Start(ctx, "signal"))
	f.answer(t, false)

	shown, _ := f.recorder.last("question")
	given, _ := f.recorder.last("feedback")
	snap := f.saved(t)
	require.NotNil(t, snap)
	assert.Equal(t, shown.options, snap.Signal.Options)
	assert.Equal(t, shown.options[given.selected].ID, snap.Signal.Selected)

	f.reconnect()
	require.NoError(t, f.sess.Resume(ctx, true))

	q, ok := f.recorder.last("question")
	require.True(t, ok)
	assert.True(t, q.frame.Answered)
	assert.Equal(t, shown.options, q.options, "options keep their order across a reload")

	fb, ok := f.recorder.last("feedback")
	require.True(t, ok)
	assert.Equal(t, given.selected, fb.selected)
	assert.Equal(t, given.outcome, fb.outcome)
	assert.False(t, fb.outcome.Correct)
	assert.Zero(t, f.recorder.count("results"))

	require.NoError(t, f.sess.Next(ctx))
	q, _ = f.recorder.last("question")
	assert.Equal(t, 1, q.frame.Index)
	assert.Empty(t, f.saved(t).Signal.Selected)
}
