package quiz

import (
	"slices"

	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/shuffle"
	"github.com/gokatarajesh/algoquest/internal/stats"
)

// Spec configures an Engine for one mode.
type Spec[T any] struct {
	Mode Mode

	// Shuffled runs start from a shuffled copy of the bank; otherwise bank order.
	Shuffled bool
	// Answerable modes present options and score answers. Pattern mode is browse-only.
	Answerable bool
	// TracksStreak modes keep a streak and feed AggregateStats.BestStreak.
	TracksStreak bool

	Answer      func(T) string
	Reward      func(T) int
	Explain     func(T) string
	Describe    func(T) Item
	Distractors DistractorFunc[T]
}

// Engine drives runs of a single mode over a fixed bank.
type Engine[T any] struct {
	spec  Spec[T]
	bank  []T
	names question.Names
	src   shuffle.Source
}

// NewEngine creates an engine. A nil src uses the global random source.
func NewEngine[T any](spec Spec[T], bank []T, names question.Names, src shuffle.Source) *Engine[T] {
	if src == nil {
		src = shuffle.Global
	}
	return &Engine[T]{
		spec:  spec,
		bank:  bank,
		names: names,
		src:   src,
	}
}

// Mode returns the engine's mode.
func (e *Engine[T]) Mode() Mode {
	return e.spec.Mode
}

// Init starts a fresh run.
func (e *Engine[T]) Init() Run[T] {
	var items []T
	if e.spec.Shuffled {
		items = shuffle.Shuffle(e.src, e.bank)
	} else {
		items = append(make([]T, 0, len(e.bank)), e.bank...)
	}
	return Run[T]{Items: items}
}

// BuildOptions returns the shuffled answer set for the current item:
// one correct option plus the mode's distractors.
func (e *Engine[T]) BuildOptions(run *Run[T]) []Option {
	if !e.spec.Answerable || run.CurrentIndex >= run.Total() {
		return nil
	}
	item := run.Items[run.CurrentIndex]
	correct := e.spec.Answer(item)
	wrong := e.spec.Distractors(item, e.bank, e.src)

	options := make([]Option, 0, len(wrong)+1)
	options = append(options, Option{ID: correct, Label: e.names.Label(correct), IsCorrect: true})
	for _, id := range wrong {
		options = append(options, Option{ID: id, Label: e.names.Label(id)})
	}
	return shuffle.Shuffle(e.src, options)
}

// Submit scores choice against the current item. The second return value is false
// when the answer was ignored because the question was already answered.
func (e *Engine[T]) Submit(run *Run[T], choice Option, agg *stats.AggregateStats) (Outcome, bool) {
	if !e.spec.Answerable || run.Answered || run.CurrentIndex >= run.Total() {
		return Outcome{}, false
	}
	run.Answered = true
	run.Selected = choice.ID

	if choice.IsCorrect {
		run.Score += e.spec.Reward(run.Items[run.CurrentIndex])
		run.Correct++
		if e.spec.TracksStreak {
			run.Streak++
			agg.ObserveStreak(run.Streak)
		}
	} else if e.spec.TracksStreak {
		run.Streak = 0
	}
	return e.outcome(run, choice.IsCorrect), true
}

// Replay rebuilds the outcome of the answered current item together with the
// index of the selected option in run.Options. It reports false when the
// run holds no recorded answer for the current item.
func (e *Engine[T]) Replay(run *Run[T]) (Outcome, int, bool) {
	if !e.spec.Answerable || !run.Answered || run.CurrentIndex >= run.Total() {
		return Outcome{}, -1, false
	}
	selected := slices.IndexFunc(run.Options, func(o Option) bool { return o.ID == run.Selected })
	if run.Selected == "" || selected < 0 {
		return Outcome{}, -1, false
	}
	return e.outcome(run, run.Options[selected].IsCorrect), selected, true
}

// outcome describes the answer to the current item once run has been scored.
func (e *Engine[T]) outcome(run *Run[T], correct bool) Outcome {
	item := run.Items[run.CurrentIndex]
	correctID := e.spec.Answer(item)
	out := Outcome{
		Mode:         e.spec.Mode,
		Correct:      correct,
		Answer:       Option{ID: correctID, Label: e.names.Label(correctID), IsCorrect: true},
		Score:        run.Score,
		Streak:       run.Streak,
		CorrectSoFar: run.Correct,
		Last:         run.IsLast(),
	}
	if correct {
		out.Awarded = e.spec.Reward(item)
	}
	if e.spec.Explain != nil {
		out.Explanation = e.spec.Explain(item)
	}
	return out
}

// Advance moves to the next item. It returns false, leaving the run untouched,
// when the current item is the last one and the run is finished.
func (e *Engine[T]) Advance(run *Run[T]) bool {
	if run.IsLast() {
		return false
	}
	run.CurrentIndex++
	run.Answered = false
	run.Options = nil
	run.Selected = ""
	return true
}

// Finish folds the run into agg and summarises it.
func (e *Engine[T]) Finish(run *Run[T], agg *stats.AggregateStats) ResultsSummary {
	agg.RecordGame(run.Score)
	pct := Percentage(run.Correct, run.Total())
	return ResultsSummary{
		Score:      run.Score,
		Correct:    run.Correct,
		Total:      run.Total(),
		Percentage: pct,
		GameType:   e.spec.Mode,
		Title:      Title(pct),
	}
}

// Frame describes the current item for rendering.
func (e *Engine[T]) Frame(run *Run[T]) Frame {
	f := Frame{
		Mode:     e.spec.Mode,
		Index:    run.CurrentIndex,
		Total:    run.Total(),
		Score:    run.Score,
		Streak:   run.Streak,
		Correct:  run.Correct,
		Answered: run.Answered,
		Flipped:  run.IsFlipped,
	}
	if run.CurrentIndex < run.Total() && e.spec.Describe != nil {
		f.Item = e.spec.Describe(run.Items[run.CurrentIndex])
	}
	return f
}

// Flip turns the current card over.
func (e *Engine[T]) Flip(run *Run[T]) {
	run.IsFlipped = !run.IsFlipped
}

// JumpTo shows card i face up. Out-of-range indexes are ignored.
func (e *Engine[T]) JumpTo(run *Run[T], i int) bool {
	if i < 0 || i >= run.Total() {
		return false
	}
	run.CurrentIndex = i
	run.IsFlipped = false
	return true
}

// Step moves delta cards forward or backward without wrapping.
func (e *Engine[T]) Step(run *Run[T], delta int) bool {
	return e.JumpTo(run, run.CurrentIndex+delta)
}

// Reshuffle shuffles the deck and restarts from the first card.
func (e *Engine[T]) Reshuffle(run *Run[T]) {
	run.Items = shuffle.Shuffle(e.src, run.Items)
	run.CurrentIndex = 0
	run.IsFlipped = false
}
