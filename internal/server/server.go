package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

// Server is the websocket front of the table service
type Server struct {
	upgrader    websocket.Upgrader
	logger      *log.Logger
	service     *TableService
	httpServer  *http.Server
	mu          sync.Mutex
	connections map[*Connection]struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewServer wires a server around the configured tables. The clock is
// injected so reconnect grace timers are controllable under test.
func NewServer(cfg *Config, logger *log.Logger, clock quartz.Clock) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		upgrader: websocket.Upgrader{
			// origin checking is the deployment proxy's concern
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		service:     NewTableService(logger, clock, cfg),
		connections: make(map[*Connection]struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Service exposes the table service, mainly for tests and the spawn command
func (s *Server) Service() *TableService {
	return s.service
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on an existing listener. The spawn command uses
// this to bind a random port before starting bots.
func (s *Server) Serve(listener net.Listener) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)

	s.httpServer = &http.Server{Handler: mux}
	s.logger.Info("listening", "addr", listener.Addr())
	return s.httpServer.Serve(listener)
}

// Shutdown stops accepting connections and closes the existing ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.connections = make(map[*Connection]struct{})
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger, s.service)

	s.mu.Lock()
	s.connections[conn] = struct{}{}
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("client connected", "total", total)

	conn.Start()

	go func() {
		<-conn.ctx.Done()
		s.mu.Lock()
		delete(s.connections, conn)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("client disconnected", "total", total)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"tables": s.service.List().Tables,
	})
}
