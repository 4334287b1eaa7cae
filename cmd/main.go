package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charm "github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/gommon/log"

	"learngame/pkg/config"
	"learngame/pkg/inference"
	"learngame/pkg/server"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cfg := config.Load()
	if level, err := charm.ParseLevel(cfg.LogLevel); err == nil {
		charm.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, keeping info", cfg.LogLevel)
	}

	inf, err := inference.New(cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to configure %s inference: %v", cfg.LLM.Provider, err)
	}
	if inf == nil {
		log.Warn("No LLM API key set, materials will use offline fallbacks")
	} else {
		log.Infof("Using %s inference", cfg.LLM.Provider)
	}

	if err := os.MkdirAll(cfg.MaterialsDir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", cfg.MaterialsDir, err)
	}

	srv := server.NewServer(ctx, cfg, inf)
	if charm.GetLevel() <= charm.DebugLevel {
		srv.Echo.Logger.SetLevel(log.DEBUG)
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err)
		done()
	}
	<-finishedShutDown
}
