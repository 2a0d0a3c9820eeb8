package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/okxbot/gookx/internal/services"
	"github.com/okxbot/gookx/okx/client"
)

var log = logrus.WithField("component", "gateway")

type Config struct {
	Port int
}

// Server exposes the trading protocols and market analytics over HTTP.
type Server struct {
	cfg       Config
	exchange  *client.Client
	trading   *services.TradingService
	analytics *services.AnalyticsService

	httpServer *http.Server
}

func New(cfg Config, exchange *client.Client, trading *services.TradingService, analytics *services.AnalyticsService) *Server {
	return &Server{
		cfg:       cfg,
		exchange:  exchange,
		trading:   trading,
		analytics: analytics,
	}
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/health", s.handleHealth)

	api := r.Group("/api/v1")
	api.POST("/buy-with-exits", s.handleBuyWithExits)
	api.POST("/sell", s.handleSell)
	api.POST("/cancel-order", s.handleCancelOrder)
	api.GET("/market-data", s.handleMarketData)
	api.GET("/tickers", s.handleTickers)
	api.GET("/currencies", s.handleCurrencies)
	api.GET("/test-connection", s.handleTestConnection)

	return r
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Infof("gateway listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	log.Infof("gateway shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs every request with its status and duration.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infof("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
