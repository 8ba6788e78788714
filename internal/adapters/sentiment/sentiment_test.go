package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"

	"github.com/dkeye/Consult/internal/config"
	"github.com/dkeye/Consult/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		score float64
		want  domain.Sentiment
	}{
		{"POSITIVE", 0.99, domain.SentimentPositive},
		{"negative", 0.9, domain.SentimentNegative},
		{"POSITIVE", 0.85, domain.SentimentNeutral},
		{"NEGATIVE", 0.5, domain.SentimentNeutral},
		{"NEUTRAL", 0.99, domain.SentimentNeutral},
		{"LABEL_1", 0.99, domain.SentimentNeutral},
	}
	for _, tt := range tests {
		if got := Classify(tt.label, tt.score, DefaultThreshold); got != tt.want {
			t.Errorf("Classify(%q, %v) = %s, want %s", tt.label, tt.score, got, tt.want)
		}
	}
}

func TestHTTPClassifier(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.Sentiment
	}{
		{"flat", `[{"label":"NEGATIVE","score":0.97},{"label":"POSITIVE","score":0.03}]`, domain.SentimentNegative},
		{"nested", `[[{"label":"POSITIVE","score":0.6},{"label":"NEGATIVE","score":0.4}]]`, domain.SentimentNeutral},
		{"highest wins", `[{"label":"NEGATIVE","score":0.01},{"label":"POSITIVE","score":0.99}]`, domain.SentimentPositive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req map[string]string
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req["inputs"] == "" {
					http.Error(w, "bad request", http.StatusBadRequest)
					return
				}
				if r.Header.Get("Authorization") != "Bearer key" {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewHTTPClassifier(srv.URL, "key", DefaultThreshold, 0)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.Analyze(context.Background(), "I feel awful")
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestHTTPClassifier_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewHTTPClassifier(srv.URL, "", DefaultThreshold, 0)
	got, err := c.Analyze(context.Background(), "hello")
	if err == nil {
		t.Fatal("Expected an error for a 503")
	}
	if got != domain.SentimentNeutral {
		t.Errorf("Failed calls should still report Neutral, got %s", got)
	}

	if _, err := NewHTTPClassifier("", "", DefaultThreshold, 0); err == nil {
		t.Error("Expected error for empty endpoint")
	}
}

type fakeGenerator struct {
	text string
	err  error
	got  string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.got = model
	if f.err != nil {
		return nil, f.err
	}
	if cfg.ResponseMIMEType != "application/json" || len(contents) != 1 {
		return nil, errors.New("unexpected request")
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func TestGemini(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		err     error
		want    domain.Sentiment
		wantErr bool
	}{
		{"confident negative", `{"label":"NEGATIVE","score":0.93}`, nil, domain.SentimentNegative, false},
		{"weak positive", `{"label":"POSITIVE","score":0.7}`, nil, domain.SentimentNeutral, false},
		{"not json", `I think it is negative`, nil, domain.SentimentNeutral, true},
		{"api error", "", errors.New("quota"), domain.SentimentNeutral, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: tt.text, err: tt.err}
			g := newGemini(gen, "", DefaultThreshold)

			got, err := g.Analyze(context.Background(), "my chest hurts")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
			if gen.got != defaultGeminiModel {
				t.Errorf("Expected default model, got %q", gen.got)
			}
		})
	}
}

func TestNew_ZeroThresholdIsHonoured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"POSITIVE","score":0.3},{"label":"NEGATIVE","score":0.2}]`))
	}))
	defer srv.Close()

	a, err := New(context.Background(), config.SentimentConfig{Backend: "http", Endpoint: srv.URL, Threshold: 0})
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.Analyze(context.Background(), "fine I guess")
	if err != nil {
		t.Fatal(err)
	}
	if got != domain.SentimentPositive {
		t.Errorf("Any labelled score should count at threshold 0, got %s", got)
	}
}

func TestNew(t *testing.T) {
	a, err := New(context.Background(), config.SentimentConfig{Backend: "none"})
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := a.Analyze(context.Background(), "anything"); s != domain.SentimentNeutral {
		t.Errorf("Noop should be Neutral, got %s", s)
	}
	if _, err := New(context.Background(), config.SentimentConfig{Backend: "gemini"}); err == nil {
		t.Error("Expected error for gemini without an api key")
	}
	if _, err := New(context.Background(), config.SentimentConfig{Backend: "magic"}); err == nil {
		t.Error("Expected error for unknown backend")
	}
}
