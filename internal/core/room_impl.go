package core

import (
	"sync"

	"github.com/dkeye/Consult/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// It never closes adapter-owned resources.
type roomImpl struct {
	id domain.RoomID

	mu         sync.RWMutex
	signal     map[domain.Role]Conn
	transcribe map[domain.Role]Conn
	history    []domain.HistoryEntry
	step       string
}

func NewRoomService(id domain.RoomID) RoomService {
	return &roomImpl{
		id:         id,
		signal:     make(map[domain.Role]Conn),
		transcribe: make(map[domain.Role]Conn),
		step:       domain.DefaultChecklistStep,
	}
}

func (r *roomImpl) ID() domain.RoomID { return r.id }

func (r *roomImpl) Info() domain.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.RoomInfo{
		ID:              r.id,
		SignalCount:     len(r.signal),
		TranscribeCount: len(r.transcribe),
		HistoryLen:      len(r.history),
		ChecklistStep:   r.step,
	}
}

func (r *roomImpl) IsEmpty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.signal) == 0 && len(r.transcribe) == 0
}

func (r *roomImpl) AddSignal(role domain.Role, c Conn) Conn {
	return r.add(r.signal, "signal", role, c)
}

func (r *roomImpl) AddTranscribe(role domain.Role, c Conn) Conn {
	return r.add(r.transcribe, "transcribe", role, c)
}

func (r *roomImpl) RemoveSignal(role domain.Role, c Conn) bool {
	return r.remove(r.signal, "signal", role, c)
}

func (r *roomImpl) RemoveTranscribe(role domain.Role, c Conn) bool {
	return r.remove(r.transcribe, "transcribe", role, c)
}

func (r *roomImpl) HoldsTranscribe(role domain.Role, c Conn) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cur, ok := r.transcribe[role]
	return ok && cur == c
}

func (r *roomImpl) add(slot map[domain.Role]Conn, name string, role domain.Role, c Conn) Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := slot[role]
	slot[role] = c
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("slot", name).Str("role", string(role)).Bool("replaced", prev != nil).Msg("connection added")
	return prev
}

func (r *roomImpl) remove(slot map[domain.Role]Conn, name string, role domain.Role, c Conn) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := slot[role]
	if !ok || (c != nil && cur != c) {
		return false
	}
	delete(slot, role)
	log.Info().Str("module", "core.room").Str("room", string(r.id)).Str("slot", name).Str("role", string(role)).Msg("connection removed")
	return true
}

func (r *roomImpl) Relay(from domain.Role, data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for role, c := range r.signal {
		if role == from {
			continue
		}
		if err := c.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, Dropped{Role: role, Conn: c})
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Str("from", string(from)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("relay result")
	return res
}

func (r *roomImpl) Broadcast(data Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for role, c := range r.transcribe {
		if err := c.TrySend(data); err != nil {
			res.Dropped = append(res.Dropped, Dropped{Role: role, Conn: c})
			continue
		}
		res.SendTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.id)).Int("sent_to", res.SendTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) AppendHistory(e domain.HistoryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, e)
}

// History returns a copy; later appends are not visible in it.
func (r *roomImpl) History() []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.HistoryEntry, len(r.history))
	copy(out, r.history)
	return out
}

func (r *roomImpl) SetChecklistStep(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step = step
}

func (r *roomImpl) ChecklistStep() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.step
}
