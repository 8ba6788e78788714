package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus instruments for the consultation server.
type Metrics struct {
	Registry *prometheus.Registry

	// Room lifecycle
	ActiveRooms  prometheus.Gauge
	RoomsCreated prometheus.Counter
	RoomsReaped  prometheus.Counter

	// Connections by channel ("signal" or "transcribe")
	ActiveConnections *prometheus.GaugeVec

	// Signaling
	SignalFramesRelayed prometheus.Counter

	// Pipeline
	WindowsEmitted        prometheus.Counter
	Transcriptions        *prometheus.CounterVec
	TranscriptionDuration prometheus.Histogram
	SentimentFailures     prometheus.Counter
	QuestionEvents        prometheus.Counter
	QuestionFailures      prometheus.Counter
	DeliveryDrops         *prometheus.CounterVec
}

// NewMetrics creates all instruments on a private registry so multiple
// servers (and tests) can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		ActiveRooms: f.NewGauge(prometheus.GaugeOpts{
			Name: "consult_active_rooms",
			Help: "Current number of live consultation rooms",
		}),
		RoomsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_rooms_created_total",
			Help: "Total number of rooms created",
		}),
		RoomsReaped: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_rooms_reaped_total",
			Help: "Total number of empty rooms discarded",
		}),

		ActiveConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "consult_active_connections",
			Help: "Current number of open websocket channels",
		}, []string{"channel"}),

		SignalFramesRelayed: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_signal_frames_relayed_total",
			Help: "Total number of signaling frames relayed to a peer",
		}),

		WindowsEmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_audio_windows_emitted_total",
			Help: "Total number of fixed-size audio windows cut from speaker backlogs",
		}),
		Transcriptions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "consult_transcriptions_total",
			Help: "Transcription attempts by outcome (ok, empty, failed)",
		}, []string{"outcome"}),
		TranscriptionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "consult_transcription_duration_seconds",
			Help:    "Time spent waiting on the transcription collaborator",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		SentimentFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_sentiment_failures_total",
			Help: "Sentiment calls that failed and degraded to Neutral",
		}),
		QuestionEvents: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_question_events_total",
			Help: "Question events broadcast to rooms",
		}),
		QuestionFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "consult_question_failures_total",
			Help: "Question rule calls that failed and degraded to no suggestion",
		}),
		DeliveryDrops: f.NewCounterVec(prometheus.CounterOpts{
			Name: "consult_delivery_drops_total",
			Help: "Recipients dropped after a failed delivery, by channel",
		}, []string{"channel"}),
	}
}
