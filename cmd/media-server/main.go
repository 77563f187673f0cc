package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kisaanchat/internal/common"
	"kisaanchat/internal/config"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/media"
)

func main() {
	cfg := config.LoadConfig()
	logger := common.NewLogger(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info().Msg("starting media server")

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongo connection failed")
	}

	storage := dbmongo.NewMediaStorage(mongoClient, cfg.Media.PublicBaseURL)
	server := media.NewHTTPServer(storage, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Media.Port,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("media server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down media server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}
	if err := mongoClient.Close(ctx); err != nil {
		logger.Error().Err(err).Msg("mongo close failed")
	}

	logger.Info().Msg("media server stopped")
}
