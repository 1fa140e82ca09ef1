package quiz

import "math"

// ScoringConfig holds the scoring constants shared by the answerable modes.
type ScoringConfig struct {
	CorrectReward int // points per correct answer in signal/complexity modes (default: 10)
	Distractors   int // wrong options shown next to the correct one (default: 3)
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		CorrectReward: 10,
		Distractors:   3,
	}
}

func (c ScoringConfig) withDefaults() ScoringConfig {
	def := DefaultScoringConfig()
	if c.CorrectReward <= 0 {
		c.CorrectReward = def.CorrectReward
	}
	if c.Distractors <= 0 {
		c.Distractors = def.Distractors
	}
	return c
}

// Percentage rounds 100*correct/total to the nearest integer. Zero when total is zero.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// Title picks the results headline for a percentage.
func Title(percentage int) string {
	switch {
	case percentage >= 90:
		return "Outstanding!"
	case percentage >= 70:
		return "Great Job!"
	case percentage >= 50:
		return "Good Effort!"
	default:
		return "Keep Practicing!"
	}
}
