package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dkeye/Consult/internal/domain"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

const geminiInstruction = `Classify the sentiment of the patient's statement from a medical consultation.
Answer with JSON only: {"label": "POSITIVE" | "NEGATIVE" | "NEUTRAL", "score": <confidence between 0 and 1>}.`

// contentGenerator is the part of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for a label and confidence and applies the
// same threshold as the other backends.
type Gemini struct {
	models    contentGenerator
	model     string
	threshold float64
}

func NewGemini(ctx context.Context, apiKey, model string, threshold float64) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return newGemini(client.Models, model, threshold), nil
}

func newGemini(models contentGenerator, model string, threshold float64) *Gemini {
	if model == "" {
		model = defaultGeminiModel
	}
	return &Gemini{models: models, model: model, threshold: threshold}
}

func (g *Gemini) Analyze(ctx context.Context, text string) (domain.Sentiment, error) {
	contents := []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(geminiInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
	}
	resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return domain.SentimentNeutral, fmt.Errorf("gemini generate: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return domain.SentimentNeutral, errors.New("gemini returned no content")
	}
	var ls labelScore
	if err := json.Unmarshal([]byte(out), &ls); err != nil {
		return domain.SentimentNeutral, fmt.Errorf("gemini response %q: %w", out, err)
	}
	return Classify(ls.Label, ls.Score, g.threshold), nil
}
