package session

import (
	"fmt"
	"time"

	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/quiz"
)

// Snapshot is the persisted in-progress state of one player's page session.
// Every mode's run is stored, not just the active one.
type Snapshot struct {
	CurrentView quiz.View                             `json:"currentView"`
	Signal      quiz.Run[question.SignalQuestion]     `json:"signal"`
	Pattern     quiz.Run[question.PatternCard]        `json:"pattern"`
	Scenario    quiz.Run[question.Scenario]           `json:"scenario"`
	Complexity  quiz.Run[question.ComplexityQuestion] `json:"complexity"`
	// Timestamp is the save time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// SavedAt returns Timestamp as a time.
func (s *Snapshot) SavedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Mode returns the quiz mode the snapshot was saved in.
func (s *Snapshot) Mode() (quiz.Mode, bool) {
	return s.CurrentView.Mode()
}

// Progress describes the saved position, e.g. "Question 4 of 10".
func (s *Snapshot) Progress() string {
	mode, ok := s.Mode()
	if !ok {
		return ""
	}
	var index, total int
	noun := "Question"
	switch mode {
	case quiz.ModeSignal:
		index, total = s.Signal.CurrentIndex, s.Signal.Total()
	case quiz.ModePattern:
		index, total = s.Pattern.CurrentIndex, s.Pattern.Total()
		noun = "Card"
	case quiz.ModeScenario:
		index, total = s.Scenario.CurrentIndex, s.Scenario.Total()
		noun = "Scenario"
	case quiz.ModeComplexity:
		index, total = s.Complexity.CurrentIndex, s.Complexity.Total()
	}
	return fmt.Sprintf("%s %d of %d", noun, index+1, total)
}

// HasResumable reports whether snap was saved in one of the quiz views.
func HasResumable(snap *Snapshot) bool {
	return snap != nil && snap.CurrentView.IsQuiz()
}
