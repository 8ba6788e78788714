package audio

import (
	"sync"

	"github.com/dkeye/Consult/internal/domain"
)

// Key addresses one speaker's backlog inside one room.
type Key struct {
	Room    domain.RoomID
	Speaker domain.Role
}

// Window is a fixed-length run of normalized samples ready for transcription.
type Window []float32

// Windower accumulates per-key audio and cuts it into non-overlapping windows.
// A backlog is only ever pushed to by its own connection; the mutex guards the map.
type Windower struct {
	size int

	mu       sync.Mutex
	backlogs map[Key][]float32
}

func NewWindower(sampleRate, windowSeconds int) *Windower {
	return &Windower{
		size:     sampleRate * windowSeconds,
		backlogs: make(map[Key][]float32),
	}
}

// Size is the number of samples in every emitted window.
func (w *Windower) Size() int { return w.size }

// Push appends samples to the key's backlog and returns every window that is
// now complete, oldest first. The remainder stays queued for the next push.
func (w *Windower) Push(key Key, samples []float32) []Window {
	w.mu.Lock()
	defer w.mu.Unlock()

	backlog := append(w.backlogs[key], samples...)

	var out []Window
	for len(backlog) >= w.size {
		win := make(Window, w.size)
		copy(win, backlog[:w.size])
		out = append(out, win)
		backlog = backlog[w.size:]
	}
	if len(out) > 0 {
		// Copy the tail so the consumed prefix can be collected.
		backlog = append([]float32(nil), backlog...)
	}
	w.backlogs[key] = backlog
	return out
}

// Pending reports how many samples are waiting for the next window.
func (w *Windower) Pending(key Key) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.backlogs[key])
}
