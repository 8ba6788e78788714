// Package transcribe turns fixed-size audio windows into text.
package transcribe

import (
	"context"
	"fmt"

	"github.com/dkeye/Consult/internal/audio"
	"github.com/dkeye/Consult/internal/config"
	"github.com/dkeye/Consult/internal/core"
)

// Noop hears nothing. Useful for running the signaling path without a model.
type Noop struct{}

func (Noop) Transcribe(context.Context, audio.Window) (string, error) { return "", nil }

// New builds the backend selected by cfg.Backend. Backends holding network
// clients implement io.Closer.
func New(ctx context.Context, cfg config.TranscriptionConfig, sampleRate int) (core.Transcriber, error) {
	switch cfg.Backend {
	case "", "none":
		return Noop{}, nil
	case "http":
		return NewHTTPClient(HTTPConfig{
			Endpoint:   cfg.Endpoint,
			Language:   cfg.Language,
			SampleRate: sampleRate,
			Timeout:    cfg.Timeout,
		})
	case "google":
		return NewGoogle(ctx, cfg.Language, sampleRate)
	}
	return nil, fmt.Errorf("unknown transcription backend %q", cfg.Backend)
}
