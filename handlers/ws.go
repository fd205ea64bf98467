package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/WilkerGw/LP-OTICA/models"
	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

const sessionKey = "session_id"

// WSHandler streams wizard session views to the browser. Visitors may also
// send wizard actions over the socket instead of POSTing them.
type WSHandler struct {
	M        *melody.Melody
	Sessions *services.WizardSessionService
}

func NewWSHandler(sessions *services.WizardSessionService) *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 4 * 1024

	// Keep-Alive behind the hosting proxy
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &WSHandler{M: m, Sessions: sessions}

	m.HandleConnect(func(s *melody.Session) {
		id, _ := s.Get(sessionKey)
		sessionID, _ := id.(string)
		view, err := sessions.Get(sessionID)
		if err != nil {
			writeJSON(s, gin.H{"error": err.Error()})
			return
		}
		writeJSON(s, view)
	})

	m.HandleMessage(func(s *melody.Session, msg []byte) {
		id, _ := s.Get(sessionKey)
		sessionID, _ := id.(string)

		var action models.WizardAction
		if err := json.Unmarshal(msg, &action); err != nil || action.Type == "" {
			writeJSON(s, gin.H{"error": "invalid action"})
			return
		}
		// the resulting view reaches every socket through SessionUpdated
		if _, err := sessions.Apply(sessionID, action); err != nil {
			writeJSON(s, gin.H{"error": err.Error(), "status": wizardErrorStatus(err)})
		}
	})

	m.HandleDisconnect(func(s *melody.Session) {
		id, _ := s.Get(sessionKey)
		log.Printf("🔌 Client disconnected from wizard session: %v", id)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	sessions.SetListener(h)
	return h
}

// HandleWS upgrades the request for an existing wizard session.
func (h *WSHandler) HandleWS(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.Sessions.Get(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{sessionKey: sessionID}); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// SessionUpdated pushes the new view to every socket of that session.
func (h *WSHandler) SessionUpdated(view models.WizardView) {
	msg, err := json.Marshal(view)
	if err != nil {
		log.Printf("⚠️ Error encoding wizard view: %v", err)
		return
	}

	err = h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get(sessionKey)
		return exists && id == view.ID
	})
	if err != nil {
		log.Printf("⚠️ Error broadcasting to session %s: %v", view.ID, err)
	}
}

func (h *WSHandler) Close() error {
	return h.M.Close()
}

func writeJSON(s *melody.Session, v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Write(msg); err != nil {
		log.Printf("⚠️ Error writing to websocket: %v", err)
	}
}
