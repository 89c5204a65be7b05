package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/adlumen/budget-engine/internal/server"
	"github.com/adlumen/budget-engine/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	configLocation := flag.String("config", "", "path to configuration file")
	address := flag.String("address", "", "listen address override")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}
	if *address != "" {
		cfg.Address = *address
	}

	logger, err := buildLogger(cfg.Logging.Level, cfg.Logging.Format, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	registry := prometheus.NewRegistry()
	handler := server.NewHandler(logger, store.NewMemoryStore(), registry, cfg.MaxBodyBytes(), version)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", cfg.Address),
		zap.String("version", version),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error",
			zap.String("op", "main"),
			zap.Error(err),
		)
		os.Exit(1)
	}
}

func buildLogger(configLevel, format, override string) (*zap.Logger, error) {
	level := configLevel
	if override != "" {
		level = override
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "", "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	return zapConfig.Build()
}
