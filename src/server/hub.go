package server

import (
	"encoding/json"
	"net/http"

	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// RunHub starts the hub loop once. Start calls it; tests may call it directly.
func (s *DashboardServer) RunHub() {
	s.hubOnce.Do(func() {
		go s.handleWebsockets()
	})
}

// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *DashboardServer) handleWebsockets() {
	for {
		select {
		case client := <-s.register:
			s.clients[client] = struct{}{}
			s.setConnections(len(s.clients))
			// Send initial state on connect
			initial := s.Coordinator.Snapshot()
			initial.Type = "INITIAL"
			client.send <- initial

		case client := <-s.unregister:
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				client.close()
				s.setConnections(len(s.clients))
			}

		case state := <-s.broadcast:
			for client := range s.clients {
				select {
				case client.send <- state:
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					client.close()
				}
			}
			s.setConnections(len(s.clients))

		case <-s.quit:
			for client := range s.clients {
				delete(s.clients, client)
				client.close()
			}
			s.setConnections(0)
			return
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// Broadcast queues a snapshot for every connected client. It never blocks.
// When the queue is full the oldest queued snapshot is discarded, so the
// newest state always reaches the hub.
func (s *DashboardServer) Broadcast(state models.MDashboardState) {
	s.stateMutex.Lock()
	s.lastUpdate = state.Timestamp
	s.stateMutex.Unlock()

	for {
		select {
		case s.broadcast <- state:
			return
		default:
		}
		select {
		case <-s.broadcast:
			s.Logger.Warning("Broadcast queue full, discarding oldest snapshot")
		default:
		}
	}
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) setConnections(n int) {
	s.stateMutex.Lock()
	s.connections = n
	s.stateMutex.Unlock()
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan models.MDashboardState, 64),
	}

	select {
	case s.register <- client:
	case <-s.quit:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

func (s *DashboardServer) HandleClientMessage(client *Client, message []byte) {
	var cmd models.MClientCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		s.Logger.Info("Failed to parse client command: %v, disconnecting client", err)
		client.conn.Close()
		return
	}

	switch cmd.Command {
	case "select":
		// A successful selection is broadcast to everyone, this client included.
		if !s.Coordinator.SelectStockByCode(cmd.Code) {
			s.Logger.Debug("Client selected unknown code %q", cmd.Code)
		}
	case "show_all":
		s.Coordinator.ShowAllStocks()
	case "subscribe":
		snapshot := s.Coordinator.Snapshot()
		snapshot.Type = "INITIAL"
		client.trySend(snapshot)
	default:
		s.Logger.Debug("Ignoring unknown client command %q", cmd.Command)
	}
}
