package orch

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkeye/Consult/internal/audio"
	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// OnAudio decodes one audio frame from role and runs every window it completes
// through the transcription pipeline, in order.
func (o *Orchestrator) OnAudio(ctx context.Context, room core.RoomService, role domain.Role, payload string) error {
	samples, err := audio.DecodeBase64PCM16(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedMessage, err)
	}
	key := audio.Key{Room: room.ID(), Speaker: role}
	for _, w := range o.Windower.Push(key, samples) {
		o.Metrics.WindowsEmitted.Inc()
		o.processWindow(ctx, room, role, w)
	}
	return nil
}

func (o *Orchestrator) processWindow(ctx context.Context, room core.RoomService, role domain.Role, w audio.Window) {
	text := o.transcribe(ctx, room.ID(), role, w)
	if text == "" {
		return
	}

	entry := domain.HistoryEntry{Speaker: role, Text: text}
	if role == domain.RolePatient {
		entry.Sentiment = o.analyze(ctx, room.ID(), text).Ptr()
	}
	room.AppendHistory(entry)
	o.Broadcast(room, domain.NewTranscriptEvent(entry))

	if role != domain.RolePatient {
		return
	}
	if questions := o.suggest(ctx, room); len(questions) > 0 {
		o.Broadcast(room, domain.NewQuestionEvent(questions))
		o.Metrics.QuestionEvents.Inc()
	}
}

func (o *Orchestrator) transcribe(ctx context.Context, room domain.RoomID, role domain.Role, w audio.Window) string {
	timer := prometheus.NewTimer(o.Metrics.TranscriptionDuration)
	text, err := o.Transcriber.Transcribe(ctx, w)
	timer.ObserveDuration()
	if err != nil {
		o.Metrics.Transcriptions.WithLabelValues("failed").Inc()
		log.Warn().Err(err).Str("module", "orch").Str("room", string(room)).Str("role", string(role)).Msg("transcription failed")
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		o.Metrics.Transcriptions.WithLabelValues("empty").Inc()
		return ""
	}
	o.Metrics.Transcriptions.WithLabelValues("ok").Inc()
	return text
}

func (o *Orchestrator) analyze(ctx context.Context, room domain.RoomID, text string) domain.Sentiment {
	s, err := o.Sentiment.Analyze(ctx, text)
	if err != nil {
		o.Metrics.SentimentFailures.Inc()
		log.Warn().Err(err).Str("module", "orch").Str("room", string(room)).Msg("sentiment failed")
		return domain.SentimentNeutral
	}
	return s
}

func (o *Orchestrator) suggest(ctx context.Context, room core.RoomService) []string {
	questions, err := o.Questions.Suggest(ctx, room.History(), room.ChecklistStep())
	if err != nil {
		o.Metrics.QuestionFailures.Inc()
		log.Warn().Err(err).Str("module", "orch").Str("room", string(room.ID())).Msg("question rules failed")
		return nil
	}
	return questions
}
