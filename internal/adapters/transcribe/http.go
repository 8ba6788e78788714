package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dkeye/Consult/internal/audio"
)

type HTTPConfig struct {
	Endpoint   string
	Language   string
	SampleRate int
	// Timeout of zero means the request lives as long as its context.
	Timeout time.Duration
}

// HTTPClient posts each window as a WAV file to a Whisper-compatible endpoint.
type HTTPClient struct {
	config     HTTPConfig
	httpClient *http.Client
}

type segment struct {
	Text string `json:"text"`
}

type response struct {
	Text     string    `json:"text"`
	Segments []segment `json:"segments,omitempty"`
}

func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("transcription endpoint cannot be empty")
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", cfg.SampleRate)
	}
	return &HTTPClient{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func (c *HTTPClient) Transcribe(ctx context.Context, w audio.Window) (string, error) {
	wav, err := audio.EncodeWAV(w, c.config.SampleRate)
	if err != nil {
		return "", fmt.Errorf("encode wav: %w", err)
	}
	body, contentType, err := c.multipartBody(wav)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(raw))
	}

	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to parse response JSON: %w", err)
	}
	return out.joined(), nil
}

// joined prefers segment text, trimmed and joined by single spaces.
func (r response) joined() string {
	if len(r.Segments) == 0 {
		return strings.TrimSpace(r.Text)
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (c *HTTPClient) multipartBody(wav []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "window.wav")
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(wav); err != nil {
		return nil, "", err
	}
	fields := map[string]string{
		"response_format": "json",
		"sample_rate":     strconv.Itoa(c.config.SampleRate),
	}
	if c.config.Language != "" {
		fields["language"] = c.config.Language
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
