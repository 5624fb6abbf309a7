package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaronzipp/undercover/internal/config"
	"github.com/aaronzipp/undercover/internal/handlers"
	"github.com/aaronzipp/undercover/internal/hub"
	"github.com/aaronzipp/undercover/internal/logging"
	"github.com/aaronzipp/undercover/internal/store"
	"github.com/aaronzipp/undercover/internal/words"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// shutdownTimeout bounds the graceful shutdown
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	bank, err := loadWords(cfg.Game.WordsFile)
	if err != nil {
		return err
	}
	log.Info().Int("pairs", bank.Len()).Msg("loaded word bank")

	rooms := store.NewRoomStore(bank, store.WithGracePeriod(cfg.Game.GracePeriod))
	ctx := handlers.NewContext(rooms, hub.New(cfg.Transport.SendTimeout), cfg)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           ctx.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(ctx.Shutdown)

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Strs("origins", cfg.Server.AllowedOrigins).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	case <-sigCtx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// loadWords reads the configured word file, or the embedded bank when none
// is set
func loadWords(path string) (*words.Bank, error) {
	if path == "" {
		bank, err := words.Default(nil)
		if err != nil {
			return nil, fmt.Errorf("loading embedded words: %w", err)
		}
		return bank, nil
	}
	bank, err := words.Load(path, nil)
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}
	return bank, nil
}
