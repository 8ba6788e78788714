package orch

import (
	"context"
	"errors"

	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrJoinRequired = errors.New("join must be the first message")
	ErrDisplaced    = errors.New("transcription connection displaced")
)

type SessionState int

const (
	AwaitingJoin SessionState = iota
	Active
	Closed
)

func (s SessionState) String() string {
	switch s {
	case AwaitingJoin:
		return "awaiting_join"
	case Active:
		return "active"
	case Closed:
		return "closed"
	}
	return "unknown"
}

// TranscribeSession drives one transcription connection.
// It is not safe for concurrent use: the adapter's read loop is its only caller.
type TranscribeSession struct {
	orch  *Orchestrator
	conn  core.Conn
	state SessionState

	room core.RoomService
	role domain.Role
}

func (o *Orchestrator) NewTranscribeSession(c core.Conn) *TranscribeSession {
	return &TranscribeSession{orch: o, conn: c}
}

func (s *TranscribeSession) State() SessionState { return s.state }

// Handle processes one inbound frame. A non-nil error means the connection
// must be terminated; the session is already Closed when it is returned.
// A session whose slot was taken over by a newer join, or whose room is
// gone, ends with ErrDisplaced on its next frame.
func (s *TranscribeSession) Handle(ctx context.Context, raw []byte) error {
	if s.state == Closed {
		return core.ErrConnClosed
	}
	msg, err := domain.DecodeInbound(raw)
	if err != nil {
		s.Close()
		return err
	}

	if s.state == AwaitingJoin {
		j, ok := msg.(domain.Join)
		if !ok {
			s.Close()
			return ErrJoinRequired
		}
		s.join(j)
		return nil
	}

	if !s.orch.Registry.HoldsTranscribe(s.room.ID(), s.role, s.conn) {
		log.Warn().Str("module", "orch").Str("room", string(s.room.ID())).Str("role", string(s.role)).Msg("displaced transcription connection closed")
		s.Close()
		return ErrDisplaced
	}

	switch m := msg.(type) {
	case domain.Join:
		log.Warn().Str("module", "orch").Str("room", string(s.room.ID())).Str("role", string(s.role)).Msg("repeated join ignored")
	case domain.Audio:
		if err := s.orch.OnAudio(ctx, s.room, s.role, m.Data); err != nil {
			s.Close()
			return err
		}
	case domain.UpdateChecklist:
		s.room.SetChecklistStep(m.Step)
		log.Info().Str("module", "orch").Str("room", string(s.room.ID())).Str("step", m.Step).Msg("checklist step updated")
	case domain.Unknown:
		log.Debug().Str("module", "orch").Str("type", m.Type).Msg("unknown message ignored")
	}
	return nil
}

func (s *TranscribeSession) join(j domain.Join) {
	room, displaced := s.orch.Registry.AttachTranscribe(j.Room, j.Speaker, s.conn)
	s.room = room
	s.role = j.Speaker
	s.state = Active
	s.orch.Metrics.ActiveConnections.WithLabelValues(channelTranscribe).Inc()
	if displaced != nil && displaced != s.conn {
		log.Warn().Str("module", "orch").Str("room", string(j.Room)).Str("role", string(j.Speaker)).Msg("transcription connection replaced")
	}
	log.Info().Str("module", "orch").Str("room", string(j.Room)).Str("role", string(j.Speaker)).Msg("transcription joined")
}

// Close leaves the room. The speaker's partial audio backlog is kept, so a
// reconnect of the same (room, speaker) continues where it stopped. Idempotent.
func (s *TranscribeSession) Close() {
	prev := s.state
	s.state = Closed
	if prev != Active {
		return
	}
	id := s.room.ID()
	s.orch.Registry.DetachTranscribe(id, s.role, s.conn)
	s.orch.Metrics.ActiveConnections.WithLabelValues(channelTranscribe).Dec()
	log.Info().Str("module", "orch").Str("room", string(id)).Str("role", string(s.role)).Msg("transcription left")
}
