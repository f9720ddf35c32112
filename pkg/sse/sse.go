package sse

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// Event is a named server-sent event with a JSON-serializable payload
type Event struct {
	Name string
	Data interface{}
}

type client struct {
	userID string
	ch     chan Event
}

type message struct {
	userID string
	event  Event
}

// Manager fans server-sent events out to the active sessions of each user.
// The client map is owned by the Run loop; all access goes through channels.
type Manager struct {
	clients    map[string]map[chan Event]struct{}
	register   chan client
	unregister chan client
	send       chan message
	stopChan   chan struct{}
	ready      atomic.Bool
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[chan Event]struct{}),
		register:   make(chan client),
		unregister: make(chan client),
		send:       make(chan message, 64),
		stopChan:   make(chan struct{}),
	}
}

// Run processes register/unregister/send requests. Call once, in its own
// goroutine, before serving traffic.
func (m *Manager) Run() {
	m.ready.Store(true)
	for {
		select {
		case <-m.stopChan:
			m.ready.Store(false)
			for _, sessions := range m.clients {
				for ch := range sessions {
					close(ch)
				}
			}
			m.clients = make(map[string]map[chan Event]struct{})
			log.Println("[SSE] Hub stopped")
			return
		case c := <-m.register:
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[chan Event]struct{})
			}
			m.clients[c.userID][c.ch] = struct{}{}
			log.Printf("[SSE] Client connected for user %s (%d sessions)", c.userID, len(m.clients[c.userID]))
		case c := <-m.unregister:
			if sessions, ok := m.clients[c.userID]; ok {
				if _, ok := sessions[c.ch]; ok {
					delete(sessions, c.ch)
					close(c.ch)
					if len(sessions) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}
		case msg := <-m.send:
			for ch := range m.clients[msg.userID] {
				select {
				case ch <- msg.event:
				default:
					// Slow consumer, drop rather than block the hub
				}
			}
		}
	}
}

// Stop shuts the hub down, closing every session channel. Call at most once.
func (m *Manager) Stop() {
	close(m.stopChan)
}

// Ready reports whether the hub loop is running
func (m *Manager) Ready() bool {
	return m.ready.Load()
}

// SendToUser pushes an event to every session the user currently has open.
// Best-effort: nothing is persisted for disconnected users.
func (m *Manager) SendToUser(userID, event string, data interface{}) {
	select {
	case m.send <- message{userID: userID, event: Event{Name: event, Data: data}}:
	default:
		log.Printf("[SSE] Send queue full, dropping %s event for user %s", event, userID)
	}
}

// ServeHTTP streams events for one authenticated user until the client
// disconnects
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	ch := make(chan Event, 16)
	cl := client{userID: userID, ch: ch}
	select {
	case m.register <- cl:
	case <-m.stopChan:
		return
	}
	defer func() {
		select {
		case m.unregister <- cl:
		case <-m.stopChan:
		}
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprint(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		case ev, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Data)
			if err != nil {
				log.Printf("[SSE] Failed to marshal %s event: %v", ev.Name, err)
				continue
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", ev.Name, data)
			c.Writer.Flush()
		}
	}
}
