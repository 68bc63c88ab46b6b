package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/muurk/orderdesk/internal/catalog"
	"github.com/muurk/orderdesk/internal/dispatch"
	"github.com/muurk/orderdesk/internal/logging"
	"github.com/muurk/orderdesk/internal/order"
	"go.uber.org/zap"
)

// Config holds the server configuration
type Config struct {
	Listen      string // e.g. ":8080"
	Catalog     *catalog.Catalog
	Link        dispatch.Link
	Formatter   order.Formatter
	CORSOrigins []string // Extra origins allowed to call the API and open sessions
	Instance    string   // Desk name shown on the page
}

// Server serves the order form and its websocket sessions.
type Server struct {
	config   *Config
	engine   *gin.Engine
	http     *http.Server
	listener net.Listener
	upgrader websocket.Upgrader

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions map[string]*websocket.Conn
	// orders outlive their connection so a reconnecting tab finds its form
	orders map[string]*orderState
}

// New creates a new Server instance
func New(config *Config) (*Server, error) {
	if config.Listen == "" {
		return nil, errors.New("listen address is required")
	}
	if config.Catalog == nil {
		config.Catalog = catalog.Default()
	}
	if config.Link.BaseURL == "" || config.Link.Phone == "" {
		config.Link = dispatch.NewLink(config.Link.BaseURL, config.Link.Phone)
	}

	s := &Server{
		config:   config,
		sessions: make(map[string]*websocket.Conn),
		orders:   make(map[string]*orderState),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	s.engine = s.routes()
	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Listen binds the listen address. Addr is valid afterwards.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve handles requests until ctx is cancelled, then shuts down gracefully.
// Listen is called first if it has not been.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	logging.Info("Order desk listening",
		zap.String("addr", s.listener.Addr().String()),
		zap.String("destination", s.config.Link.Plain()),
		zap.Int("brands", len(s.config.Catalog.Brands())),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.http.Shutdown(ctx); err != nil {
		logging.Error("Error shutting down HTTP server", zap.Error(err))
	}

	// Hijacked websocket connections are not closed by http.Server.
	s.mu.Lock()
	for addr, conn := range s.sessions {
		logging.Info("Closing active session", zap.String("remote_addr", addr))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		_ = conn.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
	}

	logging.Sync()
	return nil
}

// ActiveSessions returns the number of open websocket sessions
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) trackSession(addr string, conn *websocket.Conn) {
	s.mu.Lock()
	s.sessions[addr] = conn
	s.mu.Unlock()
}

func (s *Server) untrackSession(addr string) {
	s.mu.Lock()
	delete(s.sessions, addr)
	s.mu.Unlock()
}

// claimOrder returns the order kept under token, or a new one. An order
// still held by another connection is taken over: that connection is closed
// and its release awaited. A new order is kept under a non-empty token.
// Orders idle for longer than resumeTTL are dropped.
func (s *Server) claimOrder(token string, sess *session) (*orderState, bool) {
	for {
		s.mu.Lock()
		now := time.Now()
		for t, o := range s.orders {
			if o.owner == nil && now.Sub(o.lastSeen) > resumeTTL {
				delete(s.orders, t)
			}
		}

		o, ok := s.orders[token]
		if token == "" || !ok {
			o = s.newOrder()
			o.attach(sess)
			if token != "" {
				s.orders[token] = o
			}
			s.mu.Unlock()
			return o, false
		}
		if o.owner == nil {
			o.attach(sess)
			s.mu.Unlock()
			return o, true
		}

		prev, released := o.owner, o.released
		s.mu.Unlock()

		logging.Info("Order taken over by a new connection",
			zap.String("previous", prev.remoteAddr),
			zap.String("remote_addr", sess.remoteAddr),
		)
		prev.takeOver()
		select {
		case <-released:
		case <-time.After(writeWait):
			logging.Warn("Previous connection did not release its order")
			o := s.newOrder()
			s.mu.Lock()
			o.attach(sess)
			s.mu.Unlock()
			return o, false
		}
	}
}

// releaseOrder detaches o from its connection and starts its idle timer.
func (s *Server) releaseOrder(o *orderState) {
	s.mu.Lock()
	o.owner = nil
	o.lastSeen = time.Now()
	close(o.released)
	s.mu.Unlock()
}

// KeptOrders returns the number of orders kept for reconnecting tabs.
func (s *Server) KeptOrders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// checkOrigin accepts same-host origins and configured CORS origins.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.CORSOrigins {
		if origin == allowed {
			return true
		}
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
