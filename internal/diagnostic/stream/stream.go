// Package stream serves interactive diagnostic sessions over WebSocket.
// Clients send one scenario per text frame and receive the computed report
// back on the same connection, so a dashboard can re-run the numbers on
// every slider move without paying HTTP overhead per keystroke. The hub
// also pushes a notification to every session when the input schema
// presets are reloaded.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"revenue_leak_backend/internal/diagnostic/service"
	"revenue_leak_backend/internal/diagnostic/transport"
	"revenue_leak_backend/internal/events"
	"revenue_leak_backend/platform/httpkit"
	"revenue_leak_backend/platform/logger"
	"revenue_leak_backend/platform/metrics"
	"revenue_leak_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Frame event names sent to clients.
const (
	eventReport        = "report"
	eventError         = "error"
	eventSchemaUpdated = "schema_updated"
)

// sendBufSize is the per-client outgoing message buffer depth.
const sendBufSize = 16

// Config provides the stream tunables.
type Config interface {
	GetStreamMaxSessions() int
	GetStreamWriteTimeout() time.Duration
	GetStreamPingInterval() time.Duration
	GetStreamMaxMessageBytes() int64
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Origin enforcement is left to the reverse proxy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// reportFrame carries one computed report to the client.
type reportFrame struct {
	Event string                   `json:"event"`
	Data  transport.ReportResponse `json:"data"`
}

// errorFrame tells the client its last scenario frame was rejected.
type errorFrame struct {
	Event   string `json:"event"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// schemaFrame notifies clients that the input schema presets changed.
type schemaFrame struct {
	Event   string `json:"event"`
	Version int64  `json:"version"`
}

// Hub manages WebSocket sessions and routes scenario frames through the
// diagnostic service.
type Hub struct {
	svc *service.Service
	val *validator.Validator
	cfg Config
	log *logger.Logger
	met *metrics.Metrics

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client represents one connected WebSocket session.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a Hub. Metrics may be nil in tests.
func New(svc *service.Service, val *validator.Validator, cfg Config, log *logger.Logger, met *metrics.Metrics) *Hub {
	return &Hub{
		svc:     svc,
		val:     val,
		cfg:     cfg,
		log:     log,
		met:     met,
		clients: make(map[*client]struct{}),
	}
}

// Serve upgrades the HTTP connection to WebSocket and serves the session.
// Blocks until the connection closes.
// GET /api/v1/diagnostics/stream
func (h *Hub) Serve(c *gin.Context) {
	if max := h.cfg.GetStreamMaxSessions(); max > 0 && h.Count() >= max {
		httpkit.Error(c, http.StatusServiceUnavailable, "session limit reached", nil)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrader has already written the error response.
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBufSize)}
	h.register(cl)
	defer h.unregister(cl)

	h.log.WithContext(c.Request.Context()).Debug("stream session opened")
	go h.writePump(cl)
	h.readPump(c.Request.Context(), cl)
	h.log.WithContext(c.Request.Context()).Debug("stream session closed")
}

// Count returns the number of currently connected sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Handle routes bus events to connected clients.
func (h *Hub) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.SchemaUpdated:
		h.broadcast(schemaFrame{Event: eventSchemaUpdated, Version: e.Version})
	}
	return nil
}

// RegisterHandlers subscribes the hub to schema update events.
func (h *Hub) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.SchemaUpdated{}.EventName(), h)
}

// Close disconnects every active session. Used during server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		close(cl.send)
		delete(h.clients, cl)
		if h.met != nil {
			h.met.StreamSessionEnded()
		}
	}
}

// --- internal ---------------------------------------------------------------

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	h.mu.Unlock()
	if h.met != nil {
		h.met.StreamSessionStarted()
	}
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	_, ok := h.clients[cl]
	if ok {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
	if ok && h.met != nil {
		h.met.StreamSessionEnded()
	}
}

// readPump reads scenario frames until the connection closes. Read deadlines
// are pushed forward by pong responses and by every received frame.
func (h *Hub) readPump(ctx context.Context, cl *client) {
	defer cl.conn.Close()

	pongWait := 2 * h.cfg.GetStreamPingInterval()
	cl.conn.SetReadLimit(h.cfg.GetStreamMaxMessageBytes())
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			return
		}
		cl.conn.SetReadDeadline(time.Now().Add(pongWait))
		h.handleScenario(ctx, cl, raw)
	}
}

// handleScenario validates one inbound frame and answers with a report or
// an error frame. Stream computations publish events and count in metrics
// exactly like their HTTP equivalents.
func (h *Hub) handleScenario(ctx context.Context, cl *client, raw []byte) {
	var req transport.ComputeRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		h.send(cl, errorFrame{Event: eventError, Error: "invalid request"})
		return
	}
	if err := h.val.Struct(req); err != nil {
		h.send(cl, errorFrame{Event: eventError, Error: "validation failed", Details: err.Error()})
		return
	}

	result := h.svc.Diagnose(ctx, req.Params())
	h.send(cl, reportFrame{Event: eventReport, Data: transport.FromResult(result)})
}

// send queues a frame for one client. Channel sends happen under the read
// lock so a concurrent Close cannot close the channel mid-send.
func (h *Hub) send(cl *client, frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}

	h.mu.RLock()
	_, registered := h.clients[cl]
	delivered := false
	if registered {
		select {
		case cl.send <- data:
			delivered = true
		default:
		}
	}
	h.mu.RUnlock()

	if registered && !delivered {
		// Client's outgoing buffer is full. Disconnect it.
		h.unregister(cl)
	}
}

func (h *Hub) broadcast(frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}

	var stale []*client
	h.mu.RLock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			stale = append(stale, cl)
		}
	}
	h.mu.RUnlock()

	for _, cl := range stale {
		h.unregister(cl)
	}
}

// writePump drains the session's send channel and forwards frames to the
// connection, interleaved with periodic pings. Runs in its own goroutine
// per session.
func (h *Hub) writePump(cl *client) {
	writeTimeout := h.cfg.GetStreamWriteTimeout()
	ticker := time.NewTicker(h.cfg.GetStreamPingInterval())
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Channel was closed (hub is shutting down or session removed).
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{}) //nolint:errcheck
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
