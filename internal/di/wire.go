//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"supportchat/internal/auth"
	"supportchat/internal/chat/gateway"
	"supportchat/internal/chat/handler"
	"supportchat/internal/chat/repository"
	"supportchat/internal/dbmysql"
)

// InitializeApplication assembles the whole process; wire generates the
// real body in wire_gen.go.
func InitializeApplication() (*Application, error) {
	wire.Build(
		ProvideConfig,
		dbmysql.NewMySQL,
		repository.NewUserRepository,
		ProvideMessageRepository,
		auth.NewVerifier,
		auth.NewAuthService,
		auth.NewHandler,
		gateway.NewHub,
		ProvideChatService,
		handler.NewMessageHandler,
		ProvideRouter,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
