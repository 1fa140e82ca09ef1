package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Bank file names inside the banks directory.
const (
	SignalFile     = "signal_questions.json"
	PatternFile    = "pattern_recognition_cards.json"
	ScenarioFile   = "game_scenarios.json"
	NamesFile      = "algorithm_names.json"
	ComplexityFile = "complexity_questions.json"
)

type signalDoc struct {
	Questions []SignalQuestion `json:"questions"`
}

type patternDoc struct {
	Cards []PatternCard `json:"cards"`
}

type scenarioDoc struct {
	Scenarios []Scenario `json:"scenarios"`
}

type namesDoc struct {
	Names Names `json:"names"`
}

type complexityDoc struct {
	Questions []ComplexityQuestion `json:"questions"`
}

// LoadBanks reads all bank documents from dir concurrently.
// Any failure aborts the whole load; no partial Banks is returned.
func LoadBanks(ctx context.Context, dir string) (*Banks, error) {
	var (
		signal     signalDoc
		pattern    patternDoc
		scenario   scenarioDoc
		names      namesDoc
		complexity complexityDoc
	)

	g, ctx := errgroup.WithContext(ctx)
	load := func(name string, dst any) {
		g.Go(func() error {
			return readJSON(ctx, filepath.Join(dir, name), dst)
		})
	}
	load(SignalFile, &signal)
	load(PatternFile, &pattern)
	load(ScenarioFile, &scenario)
	load(NamesFile, &names)
	load(ComplexityFile, &complexity)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	banks := &Banks{
		Signal:     signal.Questions,
		Pattern:    pattern.Cards,
		Scenario:   scenario.Scenarios,
		Complexity: complexity.Questions,
		Names:      names.Names,
	}
	if banks.Names == nil {
		banks.Names = Names{}
	}
	if err := banks.Validate(); err != nil {
		return nil, err
	}
	return banks, nil
}

func readJSON(ctx context.Context, path string, dst any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bank %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode bank %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Validate rejects banks that cannot drive a run.
func (b *Banks) Validate() error {
	if len(b.Signal) == 0 {
		return fmt.Errorf("bank %s: no questions", SignalFile)
	}
	if len(b.Pattern) == 0 {
		return fmt.Errorf("bank %s: no cards", PatternFile)
	}
	if len(b.Scenario) == 0 {
		return fmt.Errorf("bank %s: no scenarios", ScenarioFile)
	}
	if len(b.Complexity) == 0 {
		return fmt.Errorf("bank %s: no questions", ComplexityFile)
	}
	for i, q := range b.Signal {
		if q.CorrectAlgorithm == "" {
			return fmt.Errorf("bank %s: question %d has no correctAlgorithm", SignalFile, i)
		}
	}
	for i, s := range b.Scenario {
		if s.CorrectAnswer == "" {
			return fmt.Errorf("bank %s: scenario %d has no correctAnswer", ScenarioFile, i)
		}
		if s.Points < 0 {
			return fmt.Errorf("bank %s: scenario %d has negative points", ScenarioFile, i)
		}
	}
	for i, q := range b.Complexity {
		if q.CorrectAnswer == "" {
			return fmt.Errorf("bank %s: question %d has no correctAnswer", ComplexityFile, i)
		}
	}
	return nil
}
