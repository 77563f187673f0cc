package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"kisaanchat/internal/common"
	"kisaanchat/internal/config"
	"kisaanchat/internal/di"
)

func main() {
	cfg := config.LoadConfig()
	logger := common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	common.SetJWTSecret(cfg.Auth.JWTSecret)

	logger.Info().Str("environment", cfg.Server.Environment).Msg("starting chat service")

	app, err := di.InitApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chat service")
	}

	router := mux.NewRouter()
	router.Handle("/ws", app.WSHandler)
	app.RestHandler.Register(router)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("chat service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down chat service")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	// Let in-flight automated replies land before the store goes away.
	app.Chat.Dispatcher().Wait()
	app.Uploads.Stop()

	if err := app.Mongo.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo close failed")
	}

	logger.Info().Msg("chat service stopped")
}
