// handlers/events.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"assetdesk/models"
)

// InitEventHub starts the websocket hub; call once during startup.
func InitEventHub() {
	go hub.Run()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mutex      sync.Mutex
}

type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
}

var hub = &Hub{
	clients:    make(map[*Client]bool),
	broadcast:  make(chan []byte),
	register:   make(chan *Client),
	unregister: make(chan *Client),
}

func (h *Hub) Run() {
	log.Println("WebSocket hub started")
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// BroadcastAudit pushes a mutation event to every connected client.
func BroadcastAudit(audit *models.AuditLog) {
	payload := map[string]interface{}{
		"type":       "AUDIT_EVENT",
		"action":     audit.Action,
		"entityType": audit.EntityType,
		"entityId":   audit.EntityID,
		"details":    audit.Details,
		"timestamp":  audit.CreatedAt,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal audit event: %v", err)
		return
	}

	select {
	case hub.broadcast <- data:
	default:
		// Hub not running (e.g. in tests); drop the event.
	}
}

// ServeEvents upgrades the connection and streams mutation events.
func ServeEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	userID, _ := r.Context().Value("userID").(string)
	client := &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 64),
		hub:    hub,
	}
	hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	ticker := time.NewTicker(45 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
