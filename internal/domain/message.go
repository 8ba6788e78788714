package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	TypeJoin            = "join"
	TypeAudio           = "audio"
	TypeUpdateChecklist = "update_checklist"
	TypeTranscript      = "transcript"
	TypeQuestion        = "question"
)

var ErrMalformedMessage = errors.New("malformed message")

// Inbound is one decoded transcription-channel message.
// The concrete type is one of Join, Audio, UpdateChecklist or Unknown.
type Inbound interface {
	inbound()
}

type Join struct {
	Room    RoomID
	Speaker Role
}

type Audio struct {
	// Data is the wire encoding (base64 PCM16); decoding is done by the audio package.
	Data string
}

type UpdateChecklist struct {
	Step string
}

type Unknown struct {
	Type string
}

func (Join) inbound()            {}
func (Audio) inbound()           {}
func (UpdateChecklist) inbound() {}
func (Unknown) inbound()         {}

type envelope struct {
	Type    string  `json:"type"`
	Room    *string `json:"room"`
	Speaker *string `json:"speaker"`
	Data    *string `json:"data"`
	Step    *string `json:"step"`
}

// DecodeInbound parses a raw frame once at the connection boundary.
// Known types with missing required fields are rejected with ErrMalformedMessage.
func DecodeInbound(raw []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case TypeJoin:
		if env.Room == nil || env.Speaker == nil {
			return nil, fmt.Errorf("%w: join requires room and speaker", ErrMalformedMessage)
		}
		room, err := NewRoomID(*env.Room)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		role, err := NewRole(*env.Speaker)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return Join{Room: room, Speaker: role}, nil
	case TypeAudio:
		if env.Data == nil {
			return nil, fmt.Errorf("%w: audio requires data", ErrMalformedMessage)
		}
		return Audio{Data: *env.Data}, nil
	case TypeUpdateChecklist:
		if env.Step == nil {
			return nil, fmt.Errorf("%w: update_checklist requires step", ErrMalformedMessage)
		}
		return UpdateChecklist{Step: *env.Step}, nil
	default:
		return Unknown{Type: env.Type}, nil
	}
}

type TranscriptEvent struct {
	Type      string     `json:"type"`
	Speaker   Role       `json:"speaker"`
	Text      string     `json:"text"`
	Sentiment *Sentiment `json:"sentiment"`
}

func NewTranscriptEvent(e HistoryEntry) TranscriptEvent {
	return TranscriptEvent{
		Type:      TypeTranscript,
		Speaker:   e.Speaker,
		Text:      e.Text,
		Sentiment: e.Sentiment,
	}
}

type QuestionEvent struct {
	Type      string   `json:"type"`
	Questions []string `json:"questions"`
}

func NewQuestionEvent(questions []string) QuestionEvent {
	return QuestionEvent{Type: TypeQuestion, Questions: questions}
}
