package quiz

import (
	"github.com/gokatarajesh/algoquest/internal/question"
	"github.com/gokatarajesh/algoquest/internal/shuffle"
)

// DistractorFunc picks the wrong answer ids shown next to item's correct answer.
type DistractorFunc[T any] func(item T, bank []T, src shuffle.Source) []string

// OwnDistractors draws from the item's hand-authored wrong options.
// When more than limit are authored a random subset is used.
func OwnDistractors[T any](wrong func(T) []string, limit int) DistractorFunc[T] {
	return func(item T, _ []T, src shuffle.Source) []string {
		opts := wrong(item)
		if len(opts) <= limit {
			return append([]string(nil), opts...)
		}
		return shuffle.Shuffle(src, opts)[:limit]
	}
}

// BankDistractors draws from the distinct correct answers of the whole bank.
func BankDistractors[T any](answer func(T) string, limit int) DistractorFunc[T] {
	return func(item T, bank []T, src shuffle.Source) []string {
		return wrongFromBank(bank, answer, answer(item), limit, src)
	}
}

// ScenarioWrongOptions returns up to three distinct answers from bank other than correct.
func ScenarioWrongOptions(bank []question.Scenario, correct string, src shuffle.Source) []string {
	return wrongFromBank(bank, scenarioAnswer, correct, DefaultScoringConfig().Distractors, src)
}

func wrongFromBank[T any](bank []T, answer func(T) string, correct string, limit int, src shuffle.Source) []string {
	seen := make(map[string]struct{}, len(bank))
	distinct := make([]string, 0, len(bank))
	for _, item := range bank {
		a := answer(item)
		if a == correct {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		distinct = append(distinct, a)
	}
	picked := shuffle.Shuffle(src, distinct)
	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}
