// Package hub implements the subscriber connection registry and broadcast
// fan-out.
//
// A single actor goroutine owns the connection set: register, unregister, and
// broadcast are commands on a channel, so broadcast-time cleanup and
// client-initiated closes interleave safely without locks. Each connection
// gets a dedicated writer goroutine with a bounded send buffer; a full buffer
// or a failed write evicts that connection without disturbing the others.
package hub

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/trendpulse/trendpulse/internal/domain"
	"github.com/trendpulse/trendpulse/internal/metrics"
)

const (
	commandTimeout = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn    *websocket.Conn
	replyCh chan registerResult
}

func (cmdRegister) hubCmd() {}

type registerResult struct {
	id  uuid.UUID
	err error
}

type cmdUnregister struct {
	id uuid.UUID
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	msgType domain.MessageType
	data    []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Hub ---

// Hub tracks all live subscriber connections and fans broadcasts out to them.
type Hub struct {
	cmdCh      chan hubCmd
	clock      clockwork.Clock
	clients    map[uuid.UUID]*clientWriter
	done       chan struct{}
	maxClients int
}

var _ domain.Broadcaster = (*Hub)(nil)

// NewHub creates and starts a hub. maxClients bounds the registry to prevent
// resource exhaustion.
func NewHub(clock clockwork.Clock, maxClients int) *Hub {
	h := &Hub{
		cmdCh:      make(chan hubCmd, 256),
		clock:      clock,
		clients:    make(map[uuid.UUID]*clientWriter),
		done:       make(chan struct{}),
		maxClients: maxClients,
	}
	go h.run()
	return h
}

// Register adds a newly accepted connection and returns its id. The
// connection starts receiving all subsequently broadcast messages; there is
// no replay of history.
func (h *Hub) Register(conn *websocket.Conn) (uuid.UUID, error) {
	replyCh := make(chan registerResult, 1)
	h.cmdCh <- cmdRegister{conn: conn, replyCh: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case result := <-replyCh:
		return result.id, result.err
	case <-timer.Chan():
		return uuid.Nil, fmt.Errorf("register command timed out after %v", commandTimeout)
	}
}

// Unregister removes a connection. Idempotent.
func (h *Hub) Unregister(id uuid.UUID) {
	h.cmdCh <- cmdUnregister{id: id}
}

// Broadcast serializes msg once and delivers it to every registered
// connection. Delivery failures are handled per connection and never surface
// to the caller.
func (h *Hub) Broadcast(msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal broadcast message", "type", msg.Type, "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{msgType: msg.Type, data: data}
}

// ClientCount returns the number of registered connections, or -1 if the
// command times out.
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}

	timer := h.clock.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case count := <-replyCh:
		return count
	case <-timer.Chan():
		slog.Warn("ClientCount timed out", "timeout", commandTimeout)
		return -1
	}
}

// Stop shuts down the hub, closing all client connections with a close
// frame. Blocks until the hub goroutine has exited or the timeout elapses.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}

	timer := h.clock.NewTimer(stopTimeout)
	defer timer.Stop()

	select {
	case <-h.done:
		slog.Info("Hub stopped gracefully")
	case <-timer.Chan():
		slog.Warn("Hub stop timeout exceeded", "timeout", stopTimeout)
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.id)
		case cmdBroadcast:
			h.handleBroadcast(c)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= h.maxClients {
		slog.Warn("Rejecting client: max clients reached", "max_clients", h.maxClients)
		c.conn.Close()
		c.replyCh <- registerResult{err: fmt.Errorf("max clients (%d) reached", h.maxClients)}
		return
	}

	id := uuid.New()
	h.clients[id] = newClientWriter(c.conn, h.clock)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Client registered", "connection_id", id.String(), "total_clients", len(h.clients))
	c.replyCh <- registerResult{id: id}
}

func (h *Hub) handleUnregister(id uuid.UUID) {
	cw, exists := h.clients[id]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, id)

	metrics.HubConnectedClients.Set(float64(len(h.clients)))
	slog.Debug("Client unregistered", "connection_id", id.String(), "remaining_clients", len(h.clients))
}

func (h *Hub) handleBroadcast(c cmdBroadcast) {
	metrics.HubBroadcastsTotal.WithLabelValues(string(c.msgType)).Inc()

	var evict []uuid.UUID
	for id, cw := range h.clients {
		if cw.failed() {
			evict = append(evict, id)
			metrics.HubDeliveriesTotal.WithLabelValues("failed").Inc()
			continue
		}
		select {
		case cw.sendCh <- c.data:
			metrics.HubDeliveriesTotal.WithLabelValues("sent").Inc()
		default:
			// Buffer full: the consumer is not keeping up.
			evict = append(evict, id)
			metrics.HubDeliveriesTotal.WithLabelValues("dropped").Inc()
			metrics.HubSlowClientsEvicted.Inc()
		}
	}

	for _, id := range evict {
		slog.Warn("Disconnecting unresponsive client", "connection_id", id.String())
		h.handleUnregister(id)
	}
}

func (h *Hub) handleStop() {
	slog.Info("Hub shutting down", "clients", len(h.clients))
	for id, cw := range h.clients {
		cw.stopGraceful("Server shutting down")
		delete(h.clients, id)
	}
	metrics.HubConnectedClients.Set(0)
}
