package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/okxbot/gookx/internal/gateway"
	"github.com/okxbot/gookx/internal/services"
	"github.com/okxbot/gookx/okx/client"
	"github.com/okxbot/gookx/pkg/config"
	"github.com/okxbot/gookx/pkg/logger"
)

func main() {
	// Load .env (best-effort). If missing, fall back to real env vars.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("GOOKX_CONFIG"), "YAML config file path (optional)")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		stdlog.Fatalf("load config failed: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		OutputFile: cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		stdlog.Fatalf("init logger failed: %v", err)
	}

	exchange := client.New(cfg.Exchange.BaseURL, cfg.Credentials(), cfg.Exchange.Demo,
		client.WithTimeout(time.Duration(cfg.Exchange.TimeoutSeconds)*time.Second))

	trading := services.NewTradingService(exchange, services.ExitDefaults{
		TakeProfitPct: cfg.Trading.DefaultTakeProfitPct,
		StopLossPct:   cfg.Trading.DefaultStopLossPct,
	})
	analytics := services.NewAnalyticsService(exchange)

	srv := gateway.New(gateway.Config{Port: cfg.Server.Port}, exchange, trading, analytics)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Errorf("http server error: %v", err)
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("shutdown error: %v", err)
	}
	logger.Infof("server stopped")
}
