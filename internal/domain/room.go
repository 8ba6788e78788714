package domain

type (
	RoomID string
	Role   string
)

const (
	RoleDoctor  Role = "Doctor"
	RolePatient Role = "Patient"

	// DefaultChecklistStep is where every new consultation starts.
	DefaultChecklistStep = "Introduction"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Ptr is a helper for building optional sentiments in literals.
func (s Sentiment) Ptr() *Sentiment { return &s }

// HistoryEntry is one transcribed utterance.
// Sentiment is nil for speakers that are not analysed.
type HistoryEntry struct {
	Speaker   Role       `json:"speaker"`
	Text      string     `json:"text"`
	Sentiment *Sentiment `json:"sentiment"`
}

// RoomInfo is a read-only view for APIs (no transport fields).
type RoomInfo struct {
	ID              RoomID `json:"room"`
	SignalCount     int    `json:"signal_count"`
	TranscribeCount int    `json:"transcribe_count"`
	HistoryLen      int    `json:"history_len"`
	ChecklistStep   string `json:"checklist_step"`
}
