package bridge

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/gpuhost-io/gpuhost/internal/models"
)

var upgrader = websocket.Upgrader{
	// The listener is bound to localhost; the GUI webview sends no Origin
	// header we could usefully check.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// logEvent is the wire envelope for records pushed to the GUI.
type logEvent struct {
	Event  string            `json:"event"` // "ready" or "daemon_log"
	Status string            `json:"status,omitempty"`
	Record *models.LogRecord `json:"record,omitempty"`
}

// handleLogStream upgrades to a websocket and forwards every published log
// record to the client until it disconnects. A readiness event carrying
// the current worker status is sent first so the GUI can paint immediately.
func (s *Server) handleLogStream(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[bridge] websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	subID := uuid.NewString()
	records := s.sink.Subscribe(subID)
	defer s.sink.Unsubscribe(subID)

	if err := ws.WriteJSON(logEvent{Event: "ready", Status: string(s.sup.Status())}); err != nil {
		return
	}

	// Reader goroutine: we never expect client messages, but reading is how
	// we learn about disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case rec, ok := <-records:
			if !ok {
				return
			}
			if err := ws.WriteJSON(logEvent{Event: "daemon_log", Record: &rec}); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}
