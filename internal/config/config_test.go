package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 8080 || cfg.Mode != "release" {
		t.Errorf("Unexpected server defaults: %+v", cfg)
	}
	if cfg.Audio.SampleRate != 16000 || cfg.Audio.WindowSeconds != 2 {
		t.Errorf("Unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.Sentiment.Threshold != 0.85 {
		t.Errorf("Expected threshold 0.85, got %v", cfg.Sentiment.Threshold)
	}
	if cfg.Transcription.Backend != "none" || cfg.Transcription.Timeout != 0 {
		t.Errorf("Unexpected transcription defaults: %+v", cfg.Transcription)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := writeConfig(t, `
port: 9000
pong_wait: 30s
ping_period: 20s
audio:
  window_seconds: 3
transcription:
  backend: http
  endpoint: http://stt.local/transcribe
  timeout: 5s
ice_servers:
  - urls: ["stun:stun.example.org:3478"]
  - urls: ["turn:turn.example.org:3478"]
    username: u
    credential: p
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9000 || cfg.PongWait != 30*time.Second || cfg.PingPeriod != 20*time.Second {
		t.Errorf("Unexpected values: %+v", cfg)
	}
	if cfg.Audio.WindowSeconds != 3 || cfg.Audio.SampleRate != 16000 {
		t.Errorf("Unexpected audio config: %+v", cfg.Audio)
	}
	if cfg.Transcription.Timeout != 5*time.Second || cfg.Transcription.Endpoint != "http://stt.local/transcribe" {
		t.Errorf("Unexpected transcription config: %+v", cfg.Transcription)
	}
	if len(cfg.ICEServers) != 2 || cfg.ICEServers[1].Username != "u" {
		t.Errorf("Unexpected ice servers: %+v", cfg.ICEServers)
	}
}

func TestLoadFile_EnvOverride(t *testing.T) {
	t.Setenv("CONSULT_PORT", "9191")
	t.Setenv("CONSULT_SENTIMENT_BACKEND", "gemini")

	cfg, err := LoadFile(writeConfig(t, "port: 9000\n"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Port != 9191 {
		t.Errorf("Expected env port 9191, got %d", cfg.Port)
	}
	if cfg.Sentiment.Backend != "gemini" {
		t.Errorf("Expected env sentiment backend, got %q", cfg.Sentiment.Backend)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero window":       "audio:\n  window_seconds: 0\n",
		"ping after pong":   "ping_period: 90s\npong_wait: 60s\n",
		"empty send buffer": "send_buffer: 0\n",
		"threshold too high": "sentiment:\n  threshold: 1.5\n",
		"negative threshold": "sentiment:\n  threshold: -0.1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, body)); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadFile_ZeroThreshold(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, "sentiment:\n  threshold: 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sentiment.Threshold != 0 {
		t.Errorf("Expected an explicit zero threshold to be kept, got %v", cfg.Sentiment.Threshold)
	}
}
