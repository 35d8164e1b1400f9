package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lexirank/internal/ranking"
)

//go:embed banks/placement.yaml
var defaultBankYAML []byte

// Kind is the kind of item a question tests.
type Kind string

const (
	KindVocabulary Kind = "vocabulary"
	KindGrammar    Kind = "grammar"
)

// Question is one multiple-choice test item.
type Question struct {
	ID      string   `yaml:"id"`
	Kind    Kind     `yaml:"kind"`
	Prompt  string   `yaml:"prompt"`
	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"` // index into Options
	Level   int      `yaml:"level"`  // catalog difficulty, 1..15
	Lesson  string   `yaml:"lesson"`
}

// Bank is a named set of questions.
type Bank struct {
	ID        string     `yaml:"id"`
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// ParseBank decodes and validates a YAML question bank.
func ParseBank(data []byte) (*Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// LoadBank reads a question bank from a YAML file.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank %s: %w", path, err)
	}
	return ParseBank(data)
}

// DefaultBank returns the built-in placement test bank.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultBankYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded bank is invalid: %v", err))
	}
	return b
}

// Validate checks the bank for structural errors and returns them joined.
func (b *Bank) Validate() error {
	if len(b.Questions) == 0 {
		return errors.New("bank has no questions")
	}

	var errs []error
	seen := make(map[string]bool, len(b.Questions))
	for i, q := range b.Questions {
		if q.ID == "" {
			errs = append(errs, fmt.Errorf("question %d: missing id", i))
			continue
		}
		if seen[q.ID] {
			errs = append(errs, fmt.Errorf("question %s: duplicate id", q.ID))
		}
		seen[q.ID] = true

		if q.Kind != KindVocabulary && q.Kind != KindGrammar {
			errs = append(errs, fmt.Errorf("question %s: unknown kind %q", q.ID, q.Kind))
		}
		if q.Prompt == "" {
			errs = append(errs, fmt.Errorf("question %s: missing prompt", q.ID))
		}
		if len(q.Options) < 2 || len(q.Options) > 4 {
			errs = append(errs, fmt.Errorf("question %s: need 2-4 options, got %d", q.ID, len(q.Options)))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			errs = append(errs, fmt.Errorf("question %s: answer index %d out of range", q.ID, q.Answer))
		}
		if q.Level < 1 || q.Level > ranking.MaxDifficulty {
			errs = append(errs, fmt.Errorf("question %s: level %d outside 1-%d", q.ID, q.Level, ranking.MaxDifficulty))
		}
		if q.Lesson == "" {
			errs = append(errs, fmt.Errorf("question %s: missing lesson", q.ID))
		}
	}
	return errors.Join(errs...)
}

// Select returns up to n questions ordered by level, then ID. n <= 0
// selects every question.
func (b *Bank) Select(n int) []Question {
	qs := make([]Question, len(b.Questions))
	copy(qs, b.Questions)
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Level != qs[j].Level {
			return qs[i].Level < qs[j].Level
		}
		return qs[i].ID < qs[j].ID
	})
	if n > 0 && n < len(qs) {
		qs = qs[:n]
	}
	return qs
}
