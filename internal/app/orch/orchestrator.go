package orch

import (
	"encoding/json"

	"github.com/dkeye/Consult/internal/app"
	"github.com/dkeye/Consult/internal/audio"
	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/metrics"
	"github.com/rs/zerolog/log"
)

const (
	channelSignal     = "signal"
	channelTranscribe = "transcribe"
)

// Orchestrator wires rooms, the audio windower and the collaborators together.
// Metrics is required; Policy may be nil, in which case failed recipients are
// only counted.
type Orchestrator struct {
	Registry    *app.Registry
	Windower    *audio.Windower
	Transcriber core.Transcriber
	Sentiment   core.SentimentAnalyzer
	Questions   core.QuestionSuggester
	Policy      app.Policy
	Metrics     *metrics.Metrics
}

// Broadcast encodes v once and delivers it to every transcription connection of room.
func (o *Orchestrator) Broadcast(room core.RoomService, v any) core.PublishResult {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("room", string(room.ID())).Msg("broadcast marshal")
		return core.PublishResult{}
	}
	res := room.Broadcast(data)
	o.handleDrops(room, channelTranscribe, res)
	return res
}

func (o *Orchestrator) handleDrops(room core.RoomService, channel string, res core.PublishResult) {
	for _, d := range res.Dropped {
		o.Metrics.DeliveryDrops.WithLabelValues(channel).Inc()
		if o.Policy == nil {
			continue
		}
		switch o.Policy.OnBackPressure(room, d) {
		case app.KickMember:
			o.kick(room, channel, d)
		case app.NoAction:
			log.Debug().Str("module", "orch").Str("room", string(room.ID())).Str("channel", channel).Str("role", string(d.Role)).Msg("failed recipient kept by policy")
		}
	}
}

// kick disconnects a recipient whose delivery failed. The adapter owning the
// handle notices the close and runs its own teardown, which is then a no-op.
func (o *Orchestrator) kick(room core.RoomService, channel string, d core.Dropped) {
	switch channel {
	case channelSignal:
		o.Registry.DetachSignal(room.ID(), d.Role, d.Conn)
	default:
		o.Registry.DetachTranscribe(room.ID(), d.Role, d.Conn)
	}
	d.Conn.Close()
	log.Warn().Str("module", "orch").Str("room", string(room.ID())).Str("channel", channel).Str("role", string(d.Role)).Msg("recipient dropped")
}
