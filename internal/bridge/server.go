// Package bridge exposes the supervisor and invoker to the GUI over a
// local HTTP/WebSocket interface.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gpuhost-io/gpuhost/internal/invoker"
	"github.com/gpuhost-io/gpuhost/internal/logsink"
	"github.com/gpuhost-io/gpuhost/internal/supervisor"
)

// Server is the daemon's HTTP bridge. It binds to localhost only; the GUI
// and CLI are the intended clients.
type Server struct {
	engine   *gin.Engine
	listener net.Listener
	httpSrv  *http.Server
	port     int

	sup     *supervisor.Supervisor
	inv     *invoker.Invoker
	sink    *logsink.Sink
	watcher *SettingsWatcher
}

// New creates a server listening on the specified port.
// Pass port 0 for dynamic allocation.
func New(host string, port int, sup *supervisor.Supervisor, inv *invoker.Invoker, sink *logsink.Sink) (*Server, error) {
	if host == "" {
		host = "127.0.0.1"
	}
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		listener: listener,
		port:     listener.Addr().(*net.TCPAddr).Port,
		sup:      sup,
		inv:      inv,
		sink:     sink,
	}
	s.registerRoutes()

	return s, nil
}

// registerRoutes wires the bridge API.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/daemon/status", s.handleDaemonStatus)
	api.POST("/daemon/start", s.handleDaemonStart)
	api.POST("/daemon/stop", s.handleDaemonStop)

	api.GET("/gpus", s.handleGetGPUs)
	api.POST("/gpus/:id/rental", s.handleSetGPURental)
	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handleUpdateSettings)
	api.GET("/jobs", s.handleGetJobs)
	api.GET("/network", s.handleGetNetwork)
	api.GET("/financial", s.handleGetFinancial)
	api.GET("/system", s.handleGetSystem)

	api.GET("/logs/stream", s.handleLogStream)
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// StartSettingsWatcher begins emitting a status log record whenever the
// shell settings file changes on disk, so the GUI can refresh its forms.
func (s *Server) StartSettingsWatcher() error {
	w, err := NewSettingsWatcher(s.sink)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return err
	}
	s.watcher = w
	return nil
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	s.httpSrv = &http.Server{Handler: s.engine}
	if err := s.httpSrv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the server and the settings watcher.
func (s *Server) Stop() {
	if s.watcher != nil {
		s.watcher.Close()
	}
	if s.httpSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(ctx)
	}
}
