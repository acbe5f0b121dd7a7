package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"minioj/internal/config"
	"minioj/internal/controller"
	"minioj/internal/store"
	"minioj/pkg/utils/logger"
)

const defaultShutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "Path to config file (required)")
	flushData := flag.Bool("flush-data", false, "Discard persisted state on startup")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "console", "Log format (console, json)")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "missing required --config flag")
		flag.Usage()
		os.Exit(2)
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// State is in-memory only; nothing to discard yet.
	if *flushData {
		logger.Info(context.Background(), "flush-data requested, no persisted state")
	}

	gin.SetMode(gin.ReleaseMode)
	st := store.New(conf)
	router := controller.Router(conf, st)

	addr := conf.Server.Addr()
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error(context.Background(), "init http listener failed", zap.Error(err))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(context.Background(), "http server started", zap.String("addr", addr))
		errCh <- httpServer.Serve(listener)
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(context.Background(), "http server stopped", zap.Error(err))
		}
	case <-shutdownCtx.Done():
		logger.Info(context.Background(), "shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(context.Background(), "http server shutdown failed", zap.Error(err))
	}
}
