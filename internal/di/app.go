// Package di wires the service graph. wire.go declares the graph;
// wire_gen.go carries the generated constructors.
package di

import (
	"github.com/rs/zerolog"

	"kisaanchat/internal/chat/handler"
	"kisaanchat/internal/chat/service"
	"kisaanchat/internal/config"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/gateway"
	"kisaanchat/internal/media"
)

// App is everything a binary needs to run the chat service.
type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Mongo       *dbmongo.MongoClient
	Chat        service.ChatService
	Gateway     *gateway.Gateway
	WSHandler   *gateway.WSHandler
	Uploads     *gateway.Reassembler
	RestHandler *handler.Handler
	MediaServer *media.HTTPServer
}

func provideMongoClient(cfg *config.Config) (*dbmongo.MongoClient, error) {
	return dbmongo.NewMongoConnection(cfg)
}

func provideMediaStorage(cfg *config.Config, client *dbmongo.MongoClient) *dbmongo.MediaStorage {
	return dbmongo.NewMediaStorage(client, cfg.Media.PublicBaseURL)
}

func provideRegistry(logger zerolog.Logger) *gateway.Registry {
	return gateway.NewRegistry(logger)
}

func provideReassembler(cfg *config.Config, storage *dbmongo.MediaStorage, logger zerolog.Logger) *gateway.Reassembler {
	return gateway.NewReassembler(storage, cfg.Gateway.MaxUploadBytes, cfg.Gateway.UploadIdleTimeout, logger)
}

func provideGatewayConfig(cfg *config.Config) config.Gateway {
	return cfg.Gateway
}

func provideAuthConfig(cfg *config.Config) config.Auth {
	return cfg.Auth
}
