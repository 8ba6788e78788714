package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics_Independent(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RoomsCreated.Inc()
	a.Transcriptions.WithLabelValues("ok").Inc()

	if got := testutil.ToFloat64(a.RoomsCreated); got != 1 {
		t.Errorf("Expected 1 room created, got %v", got)
	}
	if got := testutil.ToFloat64(b.RoomsCreated); got != 0 {
		t.Errorf("Expected separate registries, got %v", got)
	}
	if got := testutil.ToFloat64(a.Transcriptions.WithLabelValues("ok")); got != 1 {
		t.Errorf("Expected 1 ok transcription, got %v", got)
	}
}
