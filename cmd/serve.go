package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/session"
	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/server"
)

var (
	serveAddr     string
	serveCacheDir string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve derivations over a JSON HTTP API",
	Run: func(cmd *cobra.Command, args []string) {
		engine, cfg := buildEngine()

		addr := serveAddr
		if addr == "" {
			addr = cfg.Server.Addr
		}

		if serveCacheDir != "" {
			cache, err := internal.NewCache(serveCacheDir)
			if err != nil {
				logger.Fatal("Failed to open derivation cache", zap.Error(err))
			}
			engine.SetCache(cache)
			logger.Info("derivation cache enabled",
				zap.String("dir", serveCacheDir),
				zap.Int("entries", cache.Len()))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(addr, engine, session.NewLog(), logger)

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Error shutting down server", zap.Error(err))
			}
		}()

		if err := srv.ListenAndServe(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
		logger.Info("server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the configuration file)")
	serveCmd.Flags().StringVar(&serveCacheDir, "cache-dir", "", "Persist derivations under this directory and replay them on repeat requests")
}
