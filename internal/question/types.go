package question

// Difficulty constants used by scenario banks.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// SignalQuestion maps a problem "signal" to the algorithm it points at.
type SignalQuestion struct {
	Signal           string   `json:"signal"`
	CorrectAlgorithm string   `json:"correctAlgorithm"`
	WrongOptions     []string `json:"wrongOptions"`
	Explanation      string   `json:"explanation"`
}

// PatternCard is a flashcard: the pattern name on the front, signals on the back.
type PatternCard struct {
	Pattern     string   `json:"pattern"`
	Signals     []string `json:"signals"`
	AntiSignals []string `json:"antiSignals"`
}

// Scenario is a full problem statement worth a fixed number of points.
type Scenario struct {
	ID                 string   `json:"id,omitempty"`
	ProblemDescription string   `json:"problemDescription"`
	Difficulty         string   `json:"difficulty"`
	Points             int      `json:"points"`
	Hints              []string `json:"hints"`
	CorrectAnswer      string   `json:"correctAnswer"`
}

// ComplexityQuestion asks for the time/space complexity of a snippet or approach.
type ComplexityQuestion struct {
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	WrongOptions  []string `json:"wrongOptions"`
	Explanation   string   `json:"explanation"`
}

// Names maps algorithm ids to display labels.
type Names map[string]string

// Label returns the display label for id, or id itself when unknown.
func (n Names) Label(id string) string {
	if label, ok := n[id]; ok && label != "" {
		return label
	}
	return id
}

// Banks holds every question bank loaded at startup. Read-only after load.
type Banks struct {
	Signal     []SignalQuestion
	Pattern    []PatternCard
	Scenario   []Scenario
	Complexity []ComplexityQuestion
	Names      Names
}

// Counts reports bank sizes for the homepage menu.
type Counts struct {
	Signal     int `json:"signal"`
	Pattern    int `json:"pattern"`
	Scenario   int `json:"scenario"`
	Complexity int `json:"complexity"`
}

// Counts returns the number of items in each bank.
func (b *Banks) Counts() Counts {
	return Counts{
		Signal:     len(b.Signal),
		Pattern:    len(b.Pattern),
		Scenario:   len(b.Scenario),
		Complexity: len(b.Complexity),
	}
}
