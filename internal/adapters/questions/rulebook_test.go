package questions

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/dkeye/Consult/internal/domain"
)

func patient(text string) domain.HistoryEntry {
	return domain.HistoryEntry{Speaker: domain.RolePatient, Text: text, Sentiment: domain.SentimentNeutral.Ptr()}
}

func doctor(text string) domain.HistoryEntry {
	return domain.HistoryEntry{Speaker: domain.RoleDoctor, Text: text}
}

func TestRulebook_Suggest(t *testing.T) {
	book := NewRulebook(DefaultRules())
	ctx := context.Background()

	tests := []struct {
		name    string
		history []domain.HistoryEntry
		want    string
		wantN   int
	}{
		{"empty history", nil, "", 0},
		{"doctor only", []domain.HistoryEntry{doctor("do you have diabetes?")}, "", 0},
		{"keyword", []domain.HistoryEntry{patient("I have diabetes")}, "When was it diagnosed?", 3},
		{"case insensitive", []domain.HistoryEntry{patient("My BLOOD PRESSURE is high")}, "When was it diagnosed?", 3},
		{"specific before broad", []domain.HistoryEntry{patient("I am hypothyroid")}, "Are you taking any medication for it?", 2},
		{"broad keyword", []domain.HistoryEntry{patient("something with my thyroid")}, "When was the thyroid condition diagnosed?", 2},
		{"no match", []domain.HistoryEntry{patient("I feel great")}, "", 0},
		{
			"latest patient utterance only",
			[]domain.HistoryEntry{patient("I have diabetes"), doctor("anything else?"), patient("no, nothing")},
			"", 0,
		},
		{
			"doctor after patient is skipped",
			[]domain.HistoryEntry{patient("I smoke tobacco"), doctor("how much alcohol?")},
			"How frequently do you use tobacco? Daily, weekly, or a few times a year?", 1,
		},
		{"first rule wins", []domain.HistoryEntry{patient("heart surgery last year")}, "What was the surgery for and when was it performed?", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := book.Suggest(ctx, tt.history, domain.DefaultChecklistStep)
			if err != nil {
				t.Fatalf("Suggest: %v", err)
			}
			if len(got) != tt.wantN {
				t.Fatalf("Expected %d questions, got %v", tt.wantN, got)
			}
			if tt.wantN > 0 && !slices.Contains(got, tt.want) {
				t.Errorf("Expected %q among %v", tt.want, got)
			}
		})
	}
}

func TestRulebook_ResultIsCopy(t *testing.T) {
	book := NewRulebook(DefaultRules())
	got, _ := book.Suggest(context.Background(), []domain.HistoryEntry{patient("diabetes")}, "")
	got[0] = "mutated"

	again, _ := book.Suggest(context.Background(), []domain.HistoryEntry{patient("diabetes")}, "")
	if again[0] != "When was it diagnosed?" {
		t.Errorf("Rulebook was mutated through a returned slice: %v", again)
	}
}

func TestLoadRulebook(t *testing.T) {
	book, err := LoadRulebook("")
	if err != nil || book.Len() != len(DefaultRules()) {
		t.Fatalf("Expected default rules, got %v (%v)", book, err)
	}

	path := filepath.Join(t.TempDir(), "rules.yaml")
	body := `
rules:
  - keyword: Migraine
    questions:
      - How often do the migraines occur?
  - keyword: ""
    questions: ["skipped"]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	book, err = LoadRulebook(path)
	if err != nil {
		t.Fatalf("LoadRulebook: %v", err)
	}
	if book.Len() != 1 {
		t.Errorf("Expected 1 valid rule, got %d", book.Len())
	}
	got, _ := book.Suggest(context.Background(), []domain.HistoryEntry{patient("my migraine is back")}, "")
	if len(got) != 1 || got[0] != "How often do the migraines occur?" {
		t.Errorf("Unexpected suggestion %v", got)
	}

	if _, err := LoadRulebook(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing rules file")
	}
}
