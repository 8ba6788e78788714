package orch

import (
	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/rs/zerolog/log"
)

// JoinSignal registers c as role's signaling connection in room.
// A previous connection for the same role is replaced without notice.
func (o *Orchestrator) JoinSignal(room domain.RoomID, role domain.Role, c core.Conn) {
	_, displaced := o.Registry.AttachSignal(room, role, c)
	o.Metrics.ActiveConnections.WithLabelValues(channelSignal).Inc()
	if displaced != nil && displaced != c {
		log.Warn().Str("module", "orch").Str("room", string(room)).Str("role", string(role)).Msg("signal connection replaced")
	}
	log.Info().Str("module", "orch").Str("room", string(room)).Str("role", string(role)).Msg("signal joined")
}

// LeaveSignal is called exactly once per connection by the adapter on teardown.
func (o *Orchestrator) LeaveSignal(room domain.RoomID, role domain.Role, c core.Conn) {
	o.Registry.DetachSignal(room, role, c)
	o.Metrics.ActiveConnections.WithLabelValues(channelSignal).Dec()
	log.Info().Str("module", "orch").Str("room", string(room)).Str("role", string(role)).Msg("signal left")
}

// RelaySignal forwards an opaque signaling payload to the other roles in room.
func (o *Orchestrator) RelaySignal(room domain.RoomID, from domain.Role, data core.Frame) core.PublishResult {
	r, ok := o.Registry.Lookup(room)
	if !ok {
		return core.PublishResult{}
	}
	res := r.Relay(from, data)
	o.Metrics.SignalFramesRelayed.Add(float64(res.SendTo))
	o.handleDrops(r, channelSignal, res)
	return res
}

// History and ChecklistStep are the read side exposed to operators.
func (o *Orchestrator) History(room domain.RoomID) ([]domain.HistoryEntry, bool) {
	r, ok := o.Registry.Lookup(room)
	if !ok {
		return nil, false
	}
	return r.History(), true
}

func (o *Orchestrator) ChecklistStep(room domain.RoomID) (string, bool) {
	r, ok := o.Registry.Lookup(room)
	if !ok {
		return "", false
	}
	return r.ChecklistStep(), true
}
