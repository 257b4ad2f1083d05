// Package simhost serves a camera network over the same HTTP and websocket
// protocol a game host speaks, so the console can run without the game.
package simhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"camconsole/domain/camnet"
	"camconsole/domain/host"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	network    *camnet.Network
	engine     *gin.Engine
	httpServer *http.Server
	upgrader   websocket.Upgrader

	registry  *prometheus.Registry
	intents   *prometheus.CounterVec
	wsClients prometheus.Gauge
}

func New(addr string, network *camnet.Network) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		network: network,
		engine:  engine,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: prometheus.NewRegistry(),
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "simhost_intents_total",
			Help: "Intents received, by action and whether they changed the network.",
		}, []string{"action", "result"}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "simhost_websocket_clients",
			Help: "Connected websocket clients.",
		}),
	}
	s.registry.MustRegister(s.intents, s.wsClients)
	s.setupRoutes()
	return s
}

// Handler exposes the routes for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	api := s.engine.Group("/api")
	api.GET("/snapshot", s.handleSnapshot)
	api.GET("/style", s.handleStyle)
	api.POST("/act", s.handleAct)

	s.engine.GET("/ws", s.handleWebsocket)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.network.Snapshot())
}

func (s *Server) handleStyle(c *gin.Context) {
	c.JSON(http.StatusOK, host.StyleResponse{Style: s.network.Style()})
}

func (s *Server) handleAct(c *gin.Context) {
	var req host.ActRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied, err := s.apply(req.Action, req.Payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"applied": applied})
}

func (s *Server) apply(action string, payload []byte) (bool, error) {
	applied, err := s.network.Apply(action, payload)
	result := "ignored"
	switch {
	case err != nil:
		result = "error"
	case applied:
		result = "applied"
	}
	s.intents.WithLabelValues(action, result).Inc()
	slog.Info("simhost: intent", "action", action, "result", result)
	return applied, err
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("simhost: listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	return s.Shutdown()
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("simhost: stopped")
	return nil
}
