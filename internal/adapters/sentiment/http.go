package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkeye/Consult/internal/domain"
)

// HTTPClassifier calls a text-classification endpoint that accepts
// {"inputs": text} and answers with [{label, score}] (or a nested list of them).
type HTTPClassifier struct {
	endpoint   string
	apiKey     string
	threshold  float64
	httpClient *http.Client
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func NewHTTPClassifier(endpoint, apiKey string, threshold float64, timeout time.Duration) (*HTTPClassifier, error) {
	if endpoint == "" {
		return nil, errors.New("sentiment endpoint cannot be empty")
	}
	return &HTTPClassifier{
		endpoint:   endpoint,
		apiKey:     apiKey,
		threshold:  threshold,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClassifier) Analyze(ctx context.Context, text string) (domain.Sentiment, error) {
	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return domain.SentimentNeutral, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.SentimentNeutral, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.SentimentNeutral, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.SentimentNeutral, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.SentimentNeutral, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(raw))
	}

	best, err := decodeScores(raw)
	if err != nil {
		return domain.SentimentNeutral, err
	}
	return Classify(best.Label, best.Score, c.threshold), nil
}

// decodeScores accepts both the flat and the batched response shape and
// returns the highest-scoring label.
func decodeScores(raw []byte) (labelScore, error) {
	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err != nil {
		var nested [][]labelScore
		if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 {
			return labelScore{}, fmt.Errorf("failed to parse response JSON: %s", string(raw))
		}
		flat = nested[0]
	}
	if len(flat) == 0 {
		return labelScore{}, errors.New("classifier returned no labels")
	}
	best := flat[0]
	for _, ls := range flat[1:] {
		if ls.Score > best.Score {
			best = ls
		}
	}
	return best, nil
}
