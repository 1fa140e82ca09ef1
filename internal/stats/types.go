package stats

// AggregateStats accumulates results across every run a player finishes.
type AggregateStats struct {
	GamesPlayed int `json:"gamesPlayed"`
	BestStreak  int `json:"bestStreak"`
	TotalPoints int `json:"totalPoints"`
}

// ObserveStreak raises BestStreak to streak when it is higher. BestStreak never decreases.
func (s *AggregateStats) ObserveStreak(streak int) {
	if streak > s.BestStreak {
		s.BestStreak = streak
	}
}

// RecordGame counts a finished run and adds its score.
func (s *AggregateStats) RecordGame(score int) {
	s.GamesPlayed++
	if score > 0 {
		s.TotalPoints += score
	}
}

// Valid reports whether every counter is non-negative.
func (s AggregateStats) Valid() bool {
	return s.GamesPlayed >= 0 && s.BestStreak >= 0 && s.TotalPoints >= 0
}

// Merge folds stats gathered while the stored record was unreadable into the
// stored record: counters add up, BestStreak takes the higher value.
func (s AggregateStats) Merge(local AggregateStats) AggregateStats {
	merged := AggregateStats{
		GamesPlayed: s.GamesPlayed + local.GamesPlayed,
		BestStreak:  s.BestStreak,
		TotalPoints: s.TotalPoints + local.TotalPoints,
	}
	merged.ObserveStreak(local.BestStreak)
	return merged
}
