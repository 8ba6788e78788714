// Package questions suggests follow-up questions for the doctor from a
// keyword rulebook matched against what the patient said last.
package questions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dkeye/Consult/internal/domain"
	"gopkg.in/yaml.v3"
)

// Rule maps a keyword (matched case-insensitively as a substring) to the
// questions the consultation script requires once it is mentioned.
type Rule struct {
	Keyword   string   `yaml:"keyword"`
	Questions []string `yaml:"questions"`
}

// Rulebook is immutable after construction and safe for concurrent use.
type Rulebook struct {
	rules []Rule
}

// NewRulebook keeps the given order: the first matching rule wins, so more
// specific keywords ("hypothyroid") must come before broader ones ("thyroid").
func NewRulebook(rules []Rule) *Rulebook {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		kw := strings.ToLower(strings.TrimSpace(r.Keyword))
		if kw == "" || len(r.Questions) == 0 {
			continue
		}
		out = append(out, Rule{Keyword: kw, Questions: append([]string(nil), r.Questions...)})
	}
	return &Rulebook{rules: out}
}

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRulebook reads a YAML rules file. An empty path yields the default rulebook.
func LoadRulebook(path string) (*Rulebook, error) {
	if path == "" {
		return NewRulebook(DefaultRules()), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules %s: no rules defined", path)
	}
	return NewRulebook(f.Rules), nil
}

func (b *Rulebook) Len() int { return len(b.rules) }

// Suggest returns the questions of the first rule whose keyword occurs in the
// most recent Patient utterance. The checklist step does not narrow the match.
func (b *Rulebook) Suggest(_ context.Context, history []domain.HistoryEntry, _ string) ([]string, error) {
	last := ""
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Speaker == domain.RolePatient {
			last = strings.ToLower(history[i].Text)
			break
		}
	}
	if last == "" {
		return nil, nil
	}
	for _, r := range b.rules {
		if strings.Contains(last, r.Keyword) {
			return append([]string(nil), r.Questions...), nil
		}
	}
	return nil, nil
}
