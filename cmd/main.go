package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/config"
	chttp "github.com/priyanshu-naveen/Coffee-Shop-Prediction/http"
	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/logging"
	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/ml"
)

func main() {
	// Look for config in root even if run from cmd/
	configPath := "config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if _, err := os.Stat(filepath.Join("..", configPath)); err == nil {
			configPath = filepath.Join("..", configPath)
		}
	}

	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Logging
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	logging.ReplaceGlobals(logger)

	// 3. Model loader and predictor
	loader := ml.NewModelLoader(ml.ResolveArtifactPath(cfg.ML.ModelPath), logger.Named("ml"))
	predictor, err := ml.NewPredictor(loader, cfg.ML.CacheSize)
	if err != nil {
		logger.Fatal("failed to create predictor", zap.Error(err))
	}
	logger.Info("model artifact configured", zap.String("path", loader.Path()))

	if cfg.ML.Preload {
		// a missing artifact is reported on the page, not fatal
		if _, err := loader.Load(); err != nil {
			logger.Warn("model preload failed", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.ML.Watch {
		if err := ml.WatchArtifact(ctx, loader, logger.Named("watcher"), nil); err != nil {
			logger.Warn("artifact watcher disabled", zap.Error(err))
		}
	}

	// 4. Start HTTP server
	server := chttp.NewServer(chttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
		AllowedOrigins: cfg.Http.AllowedOrigins,
	}, predictor, logger.Named("http"))
	logger.Info("serving revenue predictions", zap.String("addr", server.Addr()))
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// 5. Handle graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}
