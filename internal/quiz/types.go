package quiz

import (
	"fmt"
)

// Mode identifies one of the four quiz modes.
type Mode string

// Supported modes.
const (
	ModeSignal     Mode = "signal"
	ModePattern    Mode = "pattern"
	ModeScenario   Mode = "scenario"
	ModeComplexity Mode = "complexity"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeSignal, ModePattern, ModeScenario, ModeComplexity}

// ParseMode validates a client-supplied mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// View returns the active-quiz view for the mode.
func (m Mode) View() View {
	return View(string(m) + "-quiz")
}

// Title is the human name shown in menus and resume prompts.
func (m Mode) Title() string {
	switch m {
	case ModeSignal:
		return "Signal Quiz"
	case ModePattern:
		return "Pattern Flashcards"
	case ModeScenario:
		return "Scenario Challenge"
	case ModeComplexity:
		return "Complexity Quiz"
	default:
		return string(m)
	}
}

// View is the screen the player is on.
type View string

// Non-quiz views. Quiz views are derived from Mode.View.
const (
	ViewHomepage View = "homepage"
	ViewResults  View = "results"
)

// Mode returns the mode of an active-quiz view.
func (v View) Mode() (Mode, bool) {
	for _, m := range Modes {
		if m.View() == v {
			return m, true
		}
	}
	return "", false
}

// IsQuiz reports whether v is one of the four active-quiz views.
func (v View) IsQuiz() bool {
	_, ok := v.Mode()
	return ok
}

// Run is the state of one pass through a mode's items.
type Run[T any] struct {
	Items        []T  `json:"items"`
	CurrentIndex int  `json:"currentIndex"`
	Score        int  `json:"score"`
	Streak       int  `json:"streak"`
	Correct      int  `json:"correct"`
	Answered     bool `json:"answered"`
	IsFlipped    bool `json:"isFlipped,omitempty"`

	// Options is the answer set shown for the current item and Selected the
	// ID of the submitted option, kept so a resumed run shows the same screen.
	Options  []Option `json:"options,omitempty"`
	Selected string   `json:"selected,omitempty"`
}

// Total is the number of items in the run.
func (r *Run[T]) Total() int {
	return len(r.Items)
}

// IsLast reports whether the current item is the final one.
func (r *Run[T]) IsLast() bool {
	return r.CurrentIndex >= len(r.Items)-1
}

// Validate checks the invariants a restored run must satisfy.
func (r *Run[T]) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("run has no items")
	}
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Items) {
		return fmt.Errorf("current index %d out of range [0,%d)", r.CurrentIndex, len(r.Items))
	}
	if r.Score < 0 || r.Streak < 0 || r.Correct < 0 {
		return fmt.Errorf("negative counters")
	}
	if r.Correct > r.CurrentIndex+1 || r.Streak > r.Correct {
		return fmt.Errorf("counters exceed answered questions")
	}
	if r.Selected != "" && !r.Answered {
		return fmt.Errorf("selection recorded on an unanswered item")
	}
	return nil
}

// Option is one answer choice presented to the player.
type Option struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IsCorrect bool   `json:"isCorrect"`
}

// Item is the presentational content of a question, scenario or card.
type Item struct {
	Prompt      string   `json:"prompt"`
	Difficulty  string   `json:"difficulty,omitempty"`
	Points      int      `json:"points,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	Signals     []string `json:"signals,omitempty"`
	AntiSignals []string `json:"antiSignals,omitempty"`
}

// Frame describes the current position of a run for rendering.
type Frame struct {
	Mode     Mode `json:"mode"`
	Index    int  `json:"index"`
	Total    int  `json:"total"`
	Item     Item `json:"item"`
	Score    int  `json:"score"`
	Streak   int  `json:"streak"`
	Correct  int  `json:"correct"`
	Answered bool `json:"answered"`
	Flipped  bool `json:"flipped,omitempty"`
}

// Outcome is the result of scoring one answer.
type Outcome struct {
	Mode         Mode   `json:"mode"`
	Correct      bool   `json:"correct"`
	Awarded      int    `json:"awarded"`
	Answer       Option `json:"answer"`
	Explanation  string `json:"explanation,omitempty"`
	Score        int    `json:"score"`
	Streak       int    `json:"streak"`
	CorrectSoFar int    `json:"correctSoFar"`
	Last         bool   `json:"last"`
}

// ResultsSummary is shown when a run finishes.
type ResultsSummary struct {
	Score      int    `json:"score"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	GameType   Mode   `json:"gameType"`
	Title      string `json:"title"`
}
