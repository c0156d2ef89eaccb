package stream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/andrescamacho/cardquest-go/internal/application/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades requests and attaches them to the hub
func (h *Hub) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Log(logging.LevelWarn, "stream upgrade failed", map[string]interface{}{
				"error": err.Error(),
			})
			return
		}
		client := newClient(h, conn)
		select {
		case h.register <- client:
		case <-h.done:
			conn.Close()
			return
		}
		go client.writePump()
		go client.readPump()
	})
}

// Server serves a hub on one path
type Server struct {
	httpServer *http.Server
	listener   net.Listener
}

// NewServer binds address and routes path to the hub
func NewServer(address, path string, hub *Hub) (*Server, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to bind stream listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(path, hub.Handler())

	return &Server{
		httpServer: &http.Server{Handler: mux},
		listener:   listener,
	}, nil
}

// Addr is the bound address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Serve blocks until Shutdown
func (s *Server) Serve() error {
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server. Hijacked websocket connections close when the hub stops.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
