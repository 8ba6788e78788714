package core

import (
	"context"

	"github.com/dkeye/Consult/internal/audio"
	"github.com/dkeye/Consult/internal/domain"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . Conn,Transcriber,SentimentAnalyzer,QuestionSuggester

// Transcriber turns one fixed-duration window into best-effort text (possibly empty).
type Transcriber interface {
	Transcribe(ctx context.Context, w audio.Window) (string, error)
}

// SentimentAnalyzer owns its confidence policy: anything that is not a
// confident Positive or Negative comes back as Neutral.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (domain.Sentiment, error)
}

// QuestionSuggester proposes follow-up questions for the doctor.
type QuestionSuggester interface {
	Suggest(ctx context.Context, history []domain.HistoryEntry, step string) ([]string, error)
}
