//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"github.com/rs/zerolog"

	"kisaanchat/internal/aiagent"
	"kisaanchat/internal/chat/handler"
	"kisaanchat/internal/chat/repository"
	"kisaanchat/internal/chat/service"
	"kisaanchat/internal/config"
	"kisaanchat/internal/dbmongo"
	"kisaanchat/internal/gateway"
	"kisaanchat/internal/media"
	"kisaanchat/internal/user"
)

// InitApp assembles the whole chat service graph from configuration.
func InitApp(cfg *config.Config, logger zerolog.Logger) (*App, error) {
	wire.Build(
		provideMongoClient,
		provideMediaStorage,
		provideRegistry,
		provideReassembler,
		provideGatewayConfig,
		provideAuthConfig,
		user.NewUserRepository,
		repository.NewChatRepository,
		aiagent.NewEngine,
		service.NewChatService,
		gateway.NewAuthenticator,
		gateway.NewGateway,
		gateway.NewWSHandler,
		handler.NewHandler,
		media.NewHTTPServer,
		wire.Bind(new(service.Broadcaster), new(*gateway.Registry)),
		wire.Bind(new(service.ReplyEngine), new(*aiagent.Engine)),
		wire.Bind(new(gateway.MediaSubmitter), new(*dbmongo.MediaStorage)),
		wire.Bind(new(handler.ConnectionStats), new(*gateway.Registry)),
		wire.Struct(new(App), "*"),
	)
	return &App{}, nil
}
