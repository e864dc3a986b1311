package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/status"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

// Server hosts game sessions over websockets
// Each connection gets its own session, owned by one runner goroutine
type Server struct {
	config   *Config
	store    storage.Store
	registry *status.Registry
	peers    *PeerManager
	upgrader websocket.Upgrader
	router   *mux.Router

	httpServer *http.Server
	listener   net.Listener
	running    atomic.Bool

	// ctx is cancelled by Stop; runners save and exit
	ctx     context.Context
	cancel  context.CancelFunc
	runners sync.WaitGroup

	statConnections *atomic.Int64
	statCommands    *atomic.Int64
	statRejected    *atomic.Int64
}

// NewServer creates a server over store; reg may be nil
func NewServer(cfg *Config, store storage.Store, reg *status.Registry) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config:   cfg,
		store:    store,
		registry: reg,
		peers:    NewPeerManager(cfg.MaxSessions),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Local play front ends are served from anywhere
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		ctx:             ctx,
		cancel:          cancel,
		statConnections: reg.Ints.Get(status.Connections),
		statCommands:    reg.Ints.Get(status.Commands),
		statRejected:    reg.Ints.Get(status.Rejected),
	}
	s.router = s.routes()
	return s
}

// Name implements service.Service
func (s *Server) Name() string {
	return "network"
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.httpServer
	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[network] serve: %v", err)
		}
	})
	log.Printf("[network] listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address, or the configured one before Start
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Address
}

// Stop disconnects every peer, waits for their final saves and closes the listener
func (s *Server) Stop() error {
	s.cancel()
	s.peers.Close()
	s.runners.Wait()

	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// PeerCount returns connected peer count
func (s *Server) PeerCount() int {
	return s.peers.Count()
}
