package signal

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dkeye/Consult/internal/app/orch"
	"github.com/dkeye/Consult/internal/core"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"
)

// Options tune every websocket this controller upgrades.
type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

// DefaultOptions keeps the ping period at nine tenths of the pong wait.
func DefaultOptions() Options {
	return Options{
		ReadLimit:  1 << 20,
		PingPeriod: 54 * time.Second,
		PongWait:   60 * time.Second,
		WriteWait:  10 * time.Second,
		SendBuffer: 32,
	}
}

// Controller adapts the two websocket channels onto the orchestrator.
type Controller struct {
	Orch *orch.Orchestrator
	opts Options
}

func NewController(o *orch.Orchestrator, opts Options) *Controller {
	return &Controller{Orch: o, opts: opts}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal serves GET /ws/signal?room=&speaker=. Opening the channel is
// the join; every text frame is relayed verbatim to the other roles.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	room, err := domain.NewRoomID(c.Query("room"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, err := domain.NewRole(c.Query("speaker"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	conn := newWSConn(ws, ctl.opts.SendBuffer)
	log.Info().Str("module", "signal").Str("conn", conn.id).Str("client", c.GetString("client_token")).Str("room", string(room)).Str("role", string(role)).Msg("new signal connection")

	ctl.Orch.JoinSignal(room, role, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer func() {
			cancel()
			ctl.Orch.LeaveSignal(room, role, conn)
			conn.Close()
		}()
		ctl.readPump(conn, func(data []byte) error {
			logSignalKind(room, role, data)
			ctl.Orch.RelaySignal(room, role, core.Frame(data))
			return nil
		})
	}()
}

// logSignalKind peeks at the payload type for debugging only; the payload
// itself stays opaque and is relayed whether or not it parses.
func logSignalKind(room domain.RoomID, role domain.Role, data []byte) {
	e := log.Debug()
	if !e.Enabled() {
		return
	}
	var env struct {
		Type string `json:"type"`
	}
	_ = json.Unmarshal(data, &env)
	kind := "other"
	if webrtc.NewSDPType(env.Type) != webrtc.SDPTypeUnknown {
		kind = "sdp"
	} else if env.Type == "candidate" {
		kind = "ice"
	}
	e.Str("module", "signal").Str("room", string(room)).Str("role", string(role)).Str("kind", kind).Str("type", env.Type).Int("bytes", len(data)).Msg("signal relay")
}

// HandleTranscribe serves GET /ws/transcribe. The first frame must be a join.
func (ctl *Controller) HandleTranscribe(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	conn := newWSConn(ws, ctl.opts.SendBuffer)
	log.Info().Str("module", "signal").Str("conn", conn.id).Str("client", c.GetString("client_token")).Msg("new transcription connection")

	session := ctl.Orch.NewTranscribeSession(conn)
	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go func() {
		defer func() {
			cancel()
			session.Close()
			conn.Close()
		}()
		ctl.readPump(conn, func(data []byte) error {
			return session.Handle(ctx, data)
		})
	}()
}
