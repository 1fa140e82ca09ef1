package quiz

import "github.com/gokatarajesh/algoquest/internal/stats"

// Driver is the mode-agnostic handle the orchestrator uses to drive a run.
type Driver interface {
	Mode() Mode
	Answerable() bool
	Start()
	Frame() Frame
	Options() []Option
	Submit(choice Option, agg *stats.AggregateStats) (Outcome, bool)
	Advance() bool
	Finish(agg *stats.AggregateStats) ResultsSummary
	Answered() bool
	IsLast() bool
	Validate() error
	Replay() (Outcome, int, bool)

	Flip()
	Step(delta int) bool
	JumpTo(i int) bool
	Reshuffle()
}

// Track binds an engine to the single run it drives.
type Track[T any] struct {
	engine *Engine[T]
	Run    Run[T]
}

var _ Driver = (*Track[struct{}])(nil)

// NewTrack creates an idle track; call Start or assign Run to use it.
func NewTrack[T any](engine *Engine[T]) *Track[T] {
	return &Track[T]{engine: engine}
}

func (t *Track[T]) Mode() Mode { return t.engine.Mode() }
func (t *Track[T]) Answerable() bool { return t.engine.spec.Answerable }
func (t *Track[T]) Start() { t.Run = t.engine.Init() }
func (t *Track[T]) Frame() Frame { return t.engine.Frame(&t.Run) }
func (t *Track[T]) Replay() (Outcome, int, bool) { return t.engine.Replay(&t.Run) }

// Options returns the answer set of the current item, building it on first use
// so every render of the item shows the same order.
func (t *Track[T]) Options() []Option {
	if len(t.Run.Options) == 0 {
		t.Run.Options = t.engine.BuildOptions(&t.Run)
	}
	return t.Run.Options
}
func (t *Track[T]) Advance() bool { return t.engine.Advance(&t.Run) }
func (t *Track[T]) Answered() bool { return t.Run.Answered }
func (t *Track[T]) IsLast() bool { return t.Run.IsLast() }
func (t *Track[T]) Validate() error { return t.Run.Validate() }
func (t *Track[T]) Flip() { t.engine.Flip(&t.Run) }
func (t *Track[T]) Step(delta int) bool {
	return t.engine.Step(&t.Run, delta)
}
func (t *Track[T]) JumpTo(i int) bool { return t.engine.JumpTo(&t.Run, i) }
func (t *Track[T]) Reshuffle() { t.engine.Reshuffle(&t.Run) }

func (t *Track[T]) Submit(choice Option, agg *stats.AggregateStats) (Outcome, bool) {
	return t.engine.Submit(&t.Run, choice, agg)
}

func (t *Track[T]) Finish(agg *stats.AggregateStats) ResultsSummary {
	return t.engine.Finish(&t.Run, agg)
}
