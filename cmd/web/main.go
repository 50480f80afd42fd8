package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/minaorangina/clab/config"
	"github.com/minaorangina/clab/engine"
	"github.com/minaorangina/clab/players"
	"github.com/minaorangina/clab/server"
	"github.com/minaorangina/clab/store"
	"go.uber.org/zap"
)

func main() {
	// a missing .env is fine
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("could not read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ge := engine.New(engine.Opts{
		Clients: players.NewRegistry(),
		Rooms:   store.NewInMemoryRoomStore(),
		Logger:  logger,
	})

	s := server.NewServer(server.Opts{
		Engine:         ge,
		AllowedOrigins: cfg.AllowedOrigins,
		ConnOpts:       cfg.ConnOpts(logger),
		Logger:         logger,
	})
	s.Addr = cfg.Addr

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}
