package quiz

import "github.com/gokatarajesh/algoquest/internal/question"

// SignalSpec: fixed reward, streak, hand-authored distractors.
func SignalSpec(cfg ScoringConfig) Spec[question.SignalQuestion] {
	cfg = cfg.withDefaults()
	return Spec[question.SignalQuestion]{
		Mode:         ModeSignal,
		Shuffled:     true,
		Answerable:   true,
		TracksStreak: true,
		Answer:       func(q question.SignalQuestion) string { return q.CorrectAlgorithm },
		Reward:       func(question.SignalQuestion) int { return cfg.CorrectReward },
		Explain:      func(q question.SignalQuestion) string { return q.Explanation },
		Describe: func(q question.SignalQuestion) Item {
			return Item{Prompt: q.Signal}
		},
		Distractors: OwnDistractors(func(q question.SignalQuestion) []string { return q.WrongOptions }, cfg.Distractors),
	}
}

// PatternSpec: browse-only flashcards in bank order.
func PatternSpec() Spec[question.PatternCard] {
	return Spec[question.PatternCard]{
		Mode: ModePattern,
		Describe: func(c question.PatternCard) Item {
			return Item{Prompt: c.Pattern, Signals: c.Signals, AntiSignals: c.AntiSignals}
		},
	}
}

// ScenarioSpec: per-scenario points, no streak, distractors from the whole bank.
func ScenarioSpec(cfg ScoringConfig) Spec[question.Scenario] {
	cfg = cfg.withDefaults()
	return Spec[question.Scenario]{
		Mode:       ModeScenario,
		Shuffled:   true,
		Answerable: true,
		Answer:     scenarioAnswer,
		Reward:     func(s question.Scenario) int { return s.Points },
		Describe: func(s question.Scenario) Item {
			return Item{Prompt: s.ProblemDescription, Difficulty: s.Difficulty, Points: s.Points, Hints: s.Hints}
		},
		Distractors: BankDistractors(scenarioAnswer, cfg.Distractors),
	}
}

// ComplexitySpec mirrors SignalSpec for complexity questions.
func ComplexitySpec(cfg ScoringConfig) Spec[question.ComplexityQuestion] {
	cfg = cfg.withDefaults()
	return Spec[question.ComplexityQuestion]{
		Mode:         ModeComplexity,
		Shuffled:     true,
		Answerable:   true,
		TracksStreak: true,
		Answer:       func(q question.ComplexityQuestion) string { return q.CorrectAnswer },
		Reward:       func(question.ComplexityQuestion) int { return cfg.CorrectReward },
		Explain:      func(q question.ComplexityQuestion) string { return q.Explanation },
		Describe: func(q question.ComplexityQuestion) Item {
			return Item{Prompt: q.Question}
		},
		Distractors: OwnDistractors(func(q question.ComplexityQuestion) []string { return q.WrongOptions }, cfg.Distractors),
	}
}

func scenarioAnswer(s question.Scenario) string {
	return s.CorrectAnswer
}
