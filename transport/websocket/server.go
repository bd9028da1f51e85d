package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aerolink/simbridge/sim/protocol"
	"github.com/aerolink/simbridge/sim/state"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1 << 20
)

// Close reasons sent to the peer on eviction and shutdown.
const (
	reasonSuperseded    = "New client connected"
	reasonServerClosing = "Server closing"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The bridge binds to loopback in the one-simulator deployment model;
		// single occupancy is a simplification there, not a security boundary.
		return true
	},
}

// Callbacks is the fixed set of subscription slots invoked by the dispatch
// engine. Nil slots are no-ops; OnUnhandled receives envelopes whose type
// matches no canonical case.
type Callbacks struct {
	OnConnect      func()
	OnDisconnect   func()
	OnAircraftData func(aircraft map[string]interface{})
	OnStatus       func(snapshot state.Status)
	OnPong         func(pong protocol.PongResponse)
	OnError        func(err error)
	OnUnhandled    func(env protocol.Envelope)
}

// Server bridges one simulator client to the host application. It owns the
// single peer slot, the simulator status tracker, and the outbound request
// primitives.
type Server struct {
	callbacks Callbacks
	tracker   *state.Tracker

	mu      sync.Mutex
	current *peer
}

// peer wraps one adopted WebSocket connection.
type peer struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closed    chan struct{}
	closeOnce sync.Once
}

// NewServer creates a broker with the given callback slots and a status
// tracker at the disconnected baseline.
func NewServer(callbacks Callbacks) *Server {
	return &Server{
		callbacks: callbacks,
		tracker:   state.NewTracker(),
	}
}

// ServeWS handles a WebSocket upgrade request and adopts the resulting
// connection as the current peer, evicting any previous one.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	p := &peer{
		conn:   conn,
		closed: make(chan struct{}),
	}

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	s.mu.Lock()
	evicted := s.current
	s.current = p
	s.mu.Unlock()

	// The evicted peer gets its close frame before the new adoption is
	// announced, so an observer sees eviction strictly before connect.
	if evicted != nil {
		evicted.close(websocket.CloseNormalClosure, reasonSuperseded)
	}

	if s.callbacks.OnConnect != nil {
		s.callbacks.OnConnect()
	}

	go p.pingLoop()
	go s.readLoop(p)
}

// readLoop pumps frames from the peer through the dispatch engine until the
// connection dies.
func (s *Server) readLoop(p *peer) {
	defer func() {
		p.shutdown()
		s.handleClose(p)
	}()

	for {
		_, raw, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				s.reportError(err)
			}
			return
		}
		s.dispatch(protocol.Decode(raw))
	}
}

// handleClose clears the peer slot and fires the disconnect notification,
// but only if the closing peer is still the current one. Close notifications
// from evicted peers must not clear state or re-fire disconnect.
func (s *Server) handleClose(p *peer) {
	s.mu.Lock()
	isCurrent := s.current == p
	if isCurrent {
		s.current = nil
	}
	s.mu.Unlock()

	if isCurrent && s.callbacks.OnDisconnect != nil {
		s.callbacks.OnDisconnect()
	}
}

// Send serializes payload and transmits it to the attached peer as a text
// frame. Strings and byte slices pass through unmodified; everything else is
// JSON-encoded. It returns false without attempting I/O when no peer is
// attached, and false after reporting the error when serialization or
// transmission fails.
func (s *Server) Send(payload interface{}) bool {
	s.mu.Lock()
	p := s.current
	s.mu.Unlock()

	if p == nil || p.isClosed() {
		return false
	}

	var data []byte
	switch v := payload.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			s.reportError(fmt.Errorf("failed to encode outbound message: %w", err))
			return false
		}
		data = encoded
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.reportError(fmt.Errorf("failed to send message: %w", err))
		return false
	}
	return true
}

// RequestAircraftData asks the simulator client for an aircraft data
// snapshot. It returns false when no peer is attached.
func (s *Server) RequestAircraftData() bool {
	return s.Send(protocol.AircraftDataRequest())
}

// RequestSimulatorStatus polls the simulator client for its status.
func (s *Server) RequestSimulatorStatus() bool {
	return s.Send(protocol.StatusRequest())
}

// Ping sends a protocol-level keep-alive ping. The answering pong is
// correlated only by application-level timing, not by request IDs.
func (s *Server) Ping() bool {
	return s.Send(protocol.Ping())
}

// PeerAttached reports whether a simulator client is currently connected to
// the bridge.
func (s *Server) PeerAttached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && !s.current.isClosed()
}

// Status returns an independent copy of the current simulator status.
func (s *Server) Status() state.Status {
	return s.tracker.Snapshot()
}

// SimulatorConnected reports whether the simulator has reported itself
// connected. This is distinct from PeerAttached: a client can be attached to
// the bridge while its simulator is down.
func (s *Server) SimulatorConnected() bool {
	return s.tracker.IsConnected()
}

// Tracker exposes the status tracker, e.g. for consumers that want to reset
// it from their disconnect callback.
func (s *Server) Tracker() *state.Tracker {
	return s.tracker
}

// Close detaches the current peer with an orderly close frame and resets the
// status tracker. The close frame is written before the connection is torn
// down, so callers that shut the HTTP listener down afterwards guarantee the
// peer sees "Server closing" rather than an abrupt reset.
func (s *Server) Close(ctx context.Context) error {
	s.mu.Lock()
	p := s.current
	s.current = nil
	s.mu.Unlock()

	defer s.tracker.Reset()

	if p == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		p.shutdown()
		return err
	}

	p.close(websocket.CloseNormalClosure, reasonServerClosing)
	return nil
}

// reportError forwards an error to the error callback, falling back to the
// process log when no callback is registered.
func (s *Server) reportError(err error) {
	if s.callbacks.OnError != nil {
		s.callbacks.OnError(err)
		return
	}
	log.Printf("WebSocket error: %v", err)
}

// pingLoop keeps the transport alive with control pings until the peer
// closes. This is the WebSocket-level heartbeat, independent of the
// protocol-level ping envelope.
func (p *peer) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.closed:
			return
		case <-ticker.C:
			p.writeMu.Lock()
			err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			p.writeMu.Unlock()
			if err != nil {
				p.shutdown()
				return
			}
		}
	}
}

// close sends an orderly close frame with the given code and reason, then
// tears the connection down. Safe to call multiple times.
func (p *peer) close(code int, reason string) {
	p.closeOnce.Do(func() {
		close(p.closed)
		msg := websocket.FormatCloseMessage(code, reason)
		p.writeMu.Lock()
		p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		p.writeMu.Unlock()
		p.conn.Close()
	})
}

// shutdown tears the connection down without a close frame, used when the
// peer is already gone.
func (p *peer) shutdown() {
	p.closeOnce.Do(func() {
		close(p.closed)
		p.conn.Close()
	})
}

func (p *peer) isClosed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}
