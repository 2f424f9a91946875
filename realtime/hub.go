// Package realtime broadcasts project change events to WebSocket clients.
// Each project is a room; publishers never block on slow clients, a write
// that times out drops the connection instead.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventIdeaCreated    EventType = "idea.created"
	EventIdeaUpdated    EventType = "idea.updated"
	EventIdeaDeleted    EventType = "idea.deleted"
	EventRoadmapUpdated EventType = "roadmap.updated"
	EventFileUploaded   EventType = "file.uploaded"
	EventFileAnalyzed   EventType = "file.analyzed"
	EventFileDeleted    EventType = "file.deleted"
)

type Event struct {
	Type      EventType `json:"type"`
	ProjectID string    `json:"project_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*websocket.Conn]bool

	broadcast chan Event
	done      chan struct{}
}

// Main is the hub the HTTP handlers and task handlers publish to.
var Main = NewHub()

func NewHub() *Hub {
	h := &Hub{
		rooms:     make(map[string]map[*websocket.Conn]bool),
		broadcast: make(chan Event, 100),
		done:      make(chan struct{}),
	}
	go h.broadcastLoop()
	return h
}

func (h *Hub) Join(projectID string, conn *websocket.Conn) {
	h.mu.Lock()
	room, ok := h.rooms[projectID]
	if !ok {
		room = make(map[*websocket.Conn]bool)
		h.rooms[projectID] = room
	}
	room[conn] = true
	count := len(room)
	h.mu.Unlock()

	log.Debug().
		Str("project", projectID).
		Int("clients", count).
		Msg("client joined")
}

func (h *Hub) Leave(projectID string, conn *websocket.Conn) {
	h.mu.Lock()
	if room, ok := h.rooms[projectID]; ok {
		delete(room, conn)
		if len(room) == 0 {
			delete(h.rooms, projectID)
		}
	}
	h.mu.Unlock()
}

// ClientCount reports connected clients for a project.
func (h *Hub) ClientCount(projectID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[projectID])
}

// Publish hands the event to the broadcaster goroutine and returns. A full
// channel drops the event rather than stalling the caller.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case h.broadcast <- event:
	case <-h.done:
	default:
		log.Warn().Str("type", string(event.Type)).Msg("broadcast channel full, dropping event")
	}
}

func (h *Hub) broadcastLoop() {
	for {
		select {
		case <-h.done:
			return
		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

func (h *Hub) deliver(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to marshal event")
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[event.ProjectID]))
	for conn := range h.rooms[event.ProjectID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := conn.Write(ctx, websocket.MessageText, data)
		cancel()

		if err != nil {
			h.Leave(event.ProjectID, conn)
			conn.Close(websocket.StatusPolicyViolation, "write timeout")
		}
	}
}

// CloseAll disconnects every client, used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for projectID, room := range h.rooms {
		for conn := range room {
			conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		delete(h.rooms, projectID)
	}
}

// Close stops the broadcaster and disconnects everyone.
func (h *Hub) Close() {
	close(h.done)
	h.CloseAll()
}
