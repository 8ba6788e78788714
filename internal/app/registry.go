package app

import (
	"sync"

	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/dkeye/Consult/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Registry owns every live room. Rooms are created on first attach and
// reaped once both connection slots are empty.
// Lock order is always registry -> room.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[domain.RoomID]core.RoomService
	metrics *metrics.Metrics
}

type RegistryOption func(*Registry)

func WithMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{rooms: make(map[domain.RoomID]core.RoomService)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) GetOrCreate(id domain.RoomID) core.RoomService {
	r.mu.RLock()
	room, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return room
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(id)
}

func (r *Registry) getOrCreateLocked(id domain.RoomID) core.RoomService {
	if room, ok := r.rooms[id]; ok {
		return room
	}
	room := core.NewRoomService(id)
	r.rooms[id] = room
	if r.metrics != nil {
		r.metrics.RoomsCreated.Inc()
		r.metrics.ActiveRooms.Set(float64(len(r.rooms)))
	}
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("room created")
	return room
}

func (r *Registry) Lookup(id domain.RoomID) (core.RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) List() []domain.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoomInfo, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room.Info())
	}
	return out
}

// AttachSignal registers c under role in the room's signaling slot, creating
// the room if needed. Creation and insertion happen under one registry lock so
// a concurrent reap cannot orphan the connection.
func (r *Registry) AttachSignal(id domain.RoomID, role domain.Role, c core.Conn) (core.RoomService, core.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room := r.getOrCreateLocked(id)
	return room, room.AddSignal(role, c)
}

func (r *Registry) AttachTranscribe(id domain.RoomID, role domain.Role, c core.Conn) (core.RoomService, core.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room := r.getOrCreateLocked(id)
	return room, room.AddTranscribe(role, c)
}

// DetachSignal removes role's signaling connection (only while it is still c,
// when c is non-nil) and reaps the room if it became empty.
// It reports whether the handle was actually removed.
func (r *Registry) DetachSignal(id domain.RoomID, role domain.Role, c core.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return false
	}
	removed := room.RemoveSignal(role, c)
	r.reapLocked(id)
	return removed
}

func (r *Registry) DetachTranscribe(id domain.RoomID, role domain.Role, c core.Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return false
	}
	removed := room.RemoveTranscribe(role, c)
	r.reapLocked(id)
	return removed
}

// HoldsTranscribe reports whether c still occupies role's transcription slot
// in a live room id. False once c was displaced, kicked or its room reaped.
func (r *Registry) HoldsTranscribe(id domain.RoomID, role domain.Role, c core.Conn) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return ok && room.HoldsTranscribe(role, c)
}

// Remove deletes the room only if both slots are empty; safe to call redundantly.
func (r *Registry) Remove(id domain.RoomID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reapLocked(id)
}

func (r *Registry) reapLocked(id domain.RoomID) bool {
	room, ok := r.rooms[id]
	if !ok || !room.IsEmpty() {
		return false
	}
	delete(r.rooms, id)
	if r.metrics != nil {
		r.metrics.RoomsReaped.Inc()
		r.metrics.ActiveRooms.Set(float64(len(r.rooms)))
	}
	log.Info().Str("module", "app.registry").Str("room", string(id)).Msg("room empty, session data discarded")
	return true
}
