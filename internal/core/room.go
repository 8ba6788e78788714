package core

import "github.com/dkeye/Consult/internal/domain"

// Dropped is a recipient whose delivery failed during a relay or broadcast.
type Dropped struct {
	Role domain.Role
	Conn Conn
}

// PublishResult reports delivery stats to the orchestrator.
type PublishResult struct {
	SendTo  int
	Dropped []Dropped
}

// RoomService is the core-facing API of a room.
// It owns both connection slots, the history and the checklist step,
// but never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	Info() domain.RoomInfo
	IsEmpty() bool

	// AddSignal and AddTranscribe replace any handle already registered for
	// role and return the displaced one (nil when the slot was free).
	AddSignal(role domain.Role, c Conn) Conn
	AddTranscribe(role domain.Role, c Conn) Conn
	// RemoveSignal and RemoveTranscribe delete role's entry. A non-nil c only
	// removes the entry while it still points at c.
	RemoveSignal(role domain.Role, c Conn) bool
	RemoveTranscribe(role domain.Role, c Conn) bool
	// HoldsTranscribe reports whether role's transcription slot is c.
	HoldsTranscribe(role domain.Role, c Conn) bool

	// Relay delivers data to every signaling connection except from's.
	Relay(from domain.Role, data Frame) PublishResult
	// Broadcast delivers data to every transcription connection.
	Broadcast(data Frame) PublishResult

	AppendHistory(e domain.HistoryEntry)
	History() []domain.HistoryEntry
	SetChecklistStep(step string)
	ChecklistStep() string
}
