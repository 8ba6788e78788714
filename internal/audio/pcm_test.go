package audio

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
)

func TestDecodePCM16(t *testing.T) {
	raw := make([]byte, 8)
	binary.LittleEndian.PutUint16(raw[0:], uint16(0))
	binary.LittleEndian.PutUint16(raw[2:], uint16(16384))
	minusOne := int16(-32768)
	binary.LittleEndian.PutUint16(raw[4:], uint16(minusOne))
	binary.LittleEndian.PutUint16(raw[6:], uint16(32767))

	samples, err := DecodePCM16(raw)
	if err != nil {
		t.Fatalf("DecodePCM16 failed: %v", err)
	}
	want := []float32{0, 0.5, -1, 32767.0 / 32768.0}
	if len(samples) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("Sample %d: expected %v, got %v", i, want[i], samples[i])
		}
	}
}

func TestDecodePCM16_OddLength(t *testing.T) {
	if _, err := DecodePCM16([]byte{1, 2, 3}); !errors.Is(err, ErrOddPCMLength) {
		t.Errorf("Expected ErrOddPCMLength, got %v", err)
	}
}

func TestDecodeBase64PCM16(t *testing.T) {
	if _, err := DecodeBase64PCM16("not base64!"); err == nil {
		t.Error("Expected error for invalid base64")
	}

	payload := base64.StdEncoding.EncodeToString(EncodePCM16([]float32{0.25, -0.25}))
	samples, err := DecodeBase64PCM16(payload)
	if err != nil {
		t.Fatalf("DecodeBase64PCM16 failed: %v", err)
	}
	if len(samples) != 2 || samples[0] != 0.25 || samples[1] != -0.25 {
		t.Errorf("Unexpected samples %v", samples)
	}
}

func TestEncodeWAV(t *testing.T) {
	samples := make([]float32, 160)
	wav, err := EncodeWAV(samples, 16000)
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}
	if len(wav) != 44+320 {
		t.Fatalf("Expected %d bytes, got %d", 44+320, len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" || string(wav[36:40]) != "data" {
		t.Error("Invalid WAV markers")
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Errorf("Expected sample rate 16000, got %d", rate)
	}

	if _, err := EncodeWAV(nil, 16000); err == nil {
		t.Error("Expected error for empty samples")
	}
	if _, err := EncodeWAV(samples, 0); err == nil {
		t.Error("Expected error for zero sample rate")
	}
}
