package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/intervia/intervia-backend/internal/model"
)

// Weights distributes the final score across the four component scores.
// Each table must sum to exactly 1.0.
type Weights struct {
	Knowledge      float64 `yaml:"knowledge"`
	Honesty        float64 `yaml:"honesty"`
	Time           float64 `yaml:"time"`
	ProblemSolving float64 `yaml:"problem_solving"`
}

// ScoringConfig tunes the scoring pipeline: per-difficulty time limits,
// per-mix weight tables and the keyword heuristics. DefaultScoring
// returns the built-in values; LoadScoring overlays a YAML file on top.
type ScoringConfig struct {
	TimeLimits map[model.Difficulty]time.Duration
	Weights    map[model.DifficultyMix]Weights
	// NeutralBase is the knowledge base score for answers to questions
	// that carry no expected topics.
	NeutralBase     float64
	VocabularyBonus float64
	Vocabulary      []string
	MarkerBonus     float64
	Markers         []string
	// TheoryFactor scales an answer's knowledge score into its problem
	// solving score for THEORY questions.
	TheoryFactor float64
	// TimeNeutralScore is used when the integrity report carries no
	// time behavior signal at all.
	TimeNeutralScore float64
}

// DefaultScoring returns the built-in scoring parameters.
func DefaultScoring() *ScoringConfig {
	return &ScoringConfig{
		TimeLimits: map[model.Difficulty]time.Duration{
			model.DifficultyEasy:   120 * time.Second,
			model.DifficultyMedium: 180 * time.Second,
			model.DifficultyHard:   300 * time.Second,
		},
		Weights: map[model.DifficultyMix]Weights{
			model.MixEasy:   {Knowledge: 0.35, Honesty: 0.30, Time: 0.20, ProblemSolving: 0.15},
			model.MixMedium: {Knowledge: 0.30, Honesty: 0.25, Time: 0.20, ProblemSolving: 0.25},
			model.MixHard:   {Knowledge: 0.25, Honesty: 0.25, Time: 0.15, ProblemSolving: 0.35},
		},
		NeutralBase:     50,
		VocabularyBonus: 5,
		Vocabulary: []string{
			"implementation", "performance", "complexity",
			"architecture", "pattern", "logic",
		},
		MarkerBonus: 10,
		Markers: []string{
			"trade-off", "alternative", "depends",
			"strategy", "handling", "solution", "scale",
		},
		TheoryFactor:     0.8,
		TimeNeutralScore: 50,
	}
}

// scoringFile is the YAML override shape. Pointer fields distinguish
// "absent" from an explicit zero.
type scoringFile struct {
	TimeLimitsSeconds map[string]int     `yaml:"time_limits_seconds"`
	Weights           map[string]Weights `yaml:"weights"`
	Knowledge         *struct {
		NeutralBase     *float64 `yaml:"neutral_base"`
		VocabularyBonus *float64 `yaml:"vocabulary_bonus"`
		Vocabulary      []string `yaml:"vocabulary"`
	} `yaml:"knowledge"`
	ProblemSolving *struct {
		MarkerBonus  *float64 `yaml:"marker_bonus"`
		Markers      []string `yaml:"markers"`
		TheoryFactor *float64 `yaml:"theory_factor"`
	} `yaml:"problem_solving"`
	TimeBehavior *struct {
		NeutralScore *float64 `yaml:"neutral_score"`
	} `yaml:"time_behavior"`
}

// LoadScoring builds the scoring configuration. An empty path returns
// the defaults; otherwise the YAML file at path is overlaid on top of
// them. The result is always validated.
func LoadScoring(path string) (*ScoringConfig, error) {
	cfg := DefaultScoring()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("scoring config: read %s: %w", path, err)
		}
		var file scoringFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("scoring config: parse %s: %w", path, err)
		}
		if err := cfg.apply(&file); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *ScoringConfig) apply(file *scoringFile) error {
	for key, secs := range file.TimeLimitsSeconds {
		d, err := parseDifficulty(key)
		if err != nil {
			return err
		}
		c.TimeLimits[d] = time.Duration(secs) * time.Second
	}
	for key, w := range file.Weights {
		m := model.DifficultyMix(strings.ToLower(key))
		switch m {
		case model.MixEasy, model.MixMedium, model.MixHard:
			c.Weights[m] = w
		default:
			return fmt.Errorf("scoring config: unknown difficulty mix %q", key)
		}
	}
	if k := file.Knowledge; k != nil {
		if k.NeutralBase != nil {
			c.NeutralBase = *k.NeutralBase
		}
		if k.VocabularyBonus != nil {
			c.VocabularyBonus = *k.VocabularyBonus
		}
		if len(k.Vocabulary) > 0 {
			c.Vocabulary = k.Vocabulary
		}
	}
	if ps := file.ProblemSolving; ps != nil {
		if ps.MarkerBonus != nil {
			c.MarkerBonus = *ps.MarkerBonus
		}
		if len(ps.Markers) > 0 {
			c.Markers = ps.Markers
		}
		if ps.TheoryFactor != nil {
			c.TheoryFactor = *ps.TheoryFactor
		}
	}
	if tb := file.TimeBehavior; tb != nil && tb.NeutralScore != nil {
		c.TimeNeutralScore = *tb.NeutralScore
	}
	return nil
}

// Validate checks the invariants the scoring pipeline relies on. It is
// called once at startup; a failure here must abort the boot.
func (c *ScoringConfig) Validate() error {
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		limit, ok := c.TimeLimits[d]
		if !ok {
			return fmt.Errorf("scoring config: missing time limit for difficulty %s", d)
		}
		if limit <= 0 {
			return fmt.Errorf("scoring config: time limit for difficulty %s must be positive", d)
		}
	}
	for _, m := range []model.DifficultyMix{model.MixEasy, model.MixMedium, model.MixHard} {
		w, ok := c.Weights[m]
		if !ok {
			return fmt.Errorf("scoring config: missing weights for difficulty mix %q", m)
		}
		sum := w.Knowledge + w.Honesty + w.Time + w.ProblemSolving
		if math.Abs(sum-1.0) > 1e-9 {
			return fmt.Errorf("scoring config: weights for mix %q sum to %.4f, want 1.0", m, sum)
		}
	}
	if c.TheoryFactor <= 0 || c.TheoryFactor > 1 {
		return fmt.Errorf("scoring config: theory factor must be in (0, 1], got %.2f", c.TheoryFactor)
	}
	if c.VocabularyBonus < 0 || c.MarkerBonus < 0 {
		return fmt.Errorf("scoring config: keyword bonuses must not be negative")
	}
	if c.NeutralBase < 0 || c.NeutralBase > 100 {
		return fmt.Errorf("scoring config: knowledge neutral base must be within [0, 100]")
	}
	if c.TimeNeutralScore < 0 || c.TimeNeutralScore > 100 {
		return fmt.Errorf("scoring config: time neutral score must be within [0, 100]")
	}
	return nil
}

func parseDifficulty(key string) (model.Difficulty, error) {
	switch strings.ToLower(key) {
	case "easy":
		return model.DifficultyEasy, nil
	case "medium":
		return model.DifficultyMedium, nil
	case "hard":
		return model.DifficultyHard, nil
	default:
		return "", fmt.Errorf("scoring config: unknown difficulty %q", key)
	}
}
