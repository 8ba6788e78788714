package http

import (
	"net/http"
	"sort"

	"github.com/dkeye/Consult/internal/app"
	"github.com/dkeye/Consult/internal/config"
	"github.com/dkeye/Consult/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"
)

// RoomResponse is the operator view of one consultation.
type RoomResponse struct {
	Room          domain.RoomID         `json:"room"`
	ChecklistStep string                `json:"checklist_step"`
	History       []domain.HistoryEntry `json:"history"`
}

type Handlers struct {
	Registry   *app.Registry
	ICEServers []webrtc.ICEServer
}

func NewHandlers(reg *app.Registry, ice []config.ICEServer) *Handlers {
	return &Handlers{Registry: reg, ICEServers: ICEServersFromConfig(ice)}
}

// ICEServersFromConfig converts configured STUN/TURN entries to the shape
// browsers pass to RTCPeerConnection.
func ICEServersFromConfig(in []config.ICEServer) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(in))
	for _, s := range in {
		if len(s.URLs) == 0 {
			continue
		}
		srv := webrtc.ICEServer{URLs: s.URLs, Username: s.Username}
		if s.Credential != "" {
			srv.Credential = s.Credential
			srv.CredentialType = webrtc.ICECredentialTypePassword
		}
		out = append(out, srv)
	}
	return out
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "rooms": len(h.Registry.List())})
}

func (h *Handlers) ListRooms(c *gin.Context) {
	rooms := h.Registry.List()
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	c.JSON(http.StatusOK, rooms)
}

func (h *Handlers) GetRoom(c *gin.Context) {
	id, err := domain.NewRoomID(c.Param("room"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	room, ok := h.Registry.Lookup(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	c.JSON(http.StatusOK, RoomResponse{
		Room:          id,
		ChecklistStep: room.ChecklistStep(),
		History:       room.History(),
	})
}

func (h *Handlers) ICE(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"iceServers": h.ICEServers})
}
