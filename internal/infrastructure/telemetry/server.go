// Package telemetry broadcasts the latest HUD snapshot over websockets.
// The feed is read-only: client frames are drained and discarded, and
// slow clients are dropped rather than allowed to stall the tick.
package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// DefaultInterval is the broadcast rate when none is given.
const DefaultInterval = 100 * time.Millisecond

// Server holds the latest published snapshot and pushes it to every
// connected client at a fixed interval.
type Server struct {
	log      *zap.Logger
	interval time.Duration
	upgrader websocket.Upgrader

	mu      sync.Mutex
	latest  []byte
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn *websocket.Conn
	done chan struct{} // closed by Close to stop the write pump
}

// NewServer creates a feed broadcasting every interval.
func NewServer(log *zap.Logger, interval time.Duration) *Server {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Server{
		log:      log,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Publish stores a fresh snapshot for the next broadcast. Unmarshalable
// values are dropped silently; the feed is best effort.
func (s *Server) Publish(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.latest = b
	s.mu.Unlock()
}

// ServeHTTP upgrades the connection and runs the client's pump pair.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("telemetry upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, done: make(chan struct{})}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	s.mu.Unlock()

	s.log.Info("telemetry client connected", zap.String("addr", conn.RemoteAddr().String()))

	go s.writePump(c)
	go s.readDrain(c)
}

// Run serves the feed on addr until the context is canceled.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/telemetry", s)
	srv := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		s.Close()
		return nil
	case err := <-errc:
		return err
	}
}

// Close drops all clients and stops accepting new ones.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for _, c := range clients {
		close(c.done)
	}
}

// writePump ticks the broadcast interval and writes the latest snapshot
// until the client errors or the server closes it.
func (s *Server) writePump(c *client) {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.latest
			s.mu.Unlock()
			if msg == nil {
				continue
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				s.drop(c, err)
				return
			}
		}
	}
}

// readDrain discards anything the client sends; its exit (client went
// away) tears the connection down.
func (s *Server) readDrain(c *client) {
	c.conn.SetReadLimit(1 << 10)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			s.drop(c, err)
			return
		}
	}
}

func (s *Server) drop(c *client, err error) {
	s.mu.Lock()
	_, present := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()

	_ = c.conn.Close()
	if present {
		s.log.Info("telemetry client dropped", zap.Error(err))
	}
}
