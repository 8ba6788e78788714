// Package sentiment labels patient utterances. Every backend applies the same
// confidence policy: only a confident positive or negative classification is
// surfaced, everything else is Neutral.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkeye/Consult/internal/config"
	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
)

const DefaultThreshold = 0.85

// Classify maps a classifier label and its score onto a Sentiment.
// Scores must be strictly above threshold to count.
func Classify(label string, score, threshold float64) domain.Sentiment {
	if score <= threshold {
		return domain.SentimentNeutral
	}
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE", "POS":
		return domain.SentimentPositive
	case "NEGATIVE", "NEG":
		return domain.SentimentNegative
	}
	return domain.SentimentNeutral
}

// Noop labels everything Neutral.
type Noop struct{}

func (Noop) Analyze(context.Context, string) (domain.Sentiment, error) {
	return domain.SentimentNeutral, nil
}

// New builds the backend selected by cfg.Backend. cfg.Threshold is used as
// given; config defaults it to DefaultThreshold.
func New(ctx context.Context, cfg config.SentimentConfig) (core.SentimentAnalyzer, error) {
	threshold := cfg.Threshold
	switch cfg.Backend {
	case "", "none":
		return Noop{}, nil
	case "http":
		return NewHTTPClassifier(cfg.Endpoint, cfg.APIKey, threshold, cfg.Timeout)
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, threshold)
	}
	return nil, fmt.Errorf("unknown sentiment backend %q", cfg.Backend)
}
