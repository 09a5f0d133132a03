// Package websockets pushes directory change events to connected browsers
// so open employee lists refresh without polling.
package websockets

import (
	"staffdir/config"
	"staffdir/internal/database"
	"staffdir/internal/events"
	"staffdir/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

type Manager struct {
	log      logger.Logger
	eventBus *events.EventBus

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	m := &Manager{
		log:      logger.New("websockets"),
		eventBus: eventBus,
		conns:    make(map[*websocket.Conn]struct{}),
	}

	eventBus.Subscribe(events.ChannelEmployees, m.broadcast)

	return m, nil
}

// HandleWebSocket owns the connection for its lifetime; the read loop exists
// only to detect the browser going away.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	m.mu.Lock()
	m.conns[c] = struct{}{}
	count := len(m.conns)
	m.mu.Unlock()

	log.Info("websocket connected", "connections", count)

	defer func() {
		m.mu.Lock()
		delete(m.conns, c)
		m.mu.Unlock()
		_ = c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug("websocket closed", "error", err)
			return
		}
	}
}

func (m *Manager) broadcast(event events.Event) {
	log := m.log.Function("broadcast")

	m.mu.Lock()
	defer m.mu.Unlock()

	for c := range m.conns {
		if err := c.WriteJSON(event); err != nil {
			log.Warn("failed to write event to websocket, dropping connection", "error", err)
			delete(m.conns, c)
			_ = c.Close()
		}
	}
}
