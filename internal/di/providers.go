package di

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"supportchat/internal/auth"
	"supportchat/internal/chat/gateway"
	"supportchat/internal/chat/handler"
	"supportchat/internal/chat/repository"
	"supportchat/internal/chat/service"
	"supportchat/internal/config"
	"supportchat/internal/dbmongo"
)

// Application is the assembled process: everything main needs to serve.
type Application struct {
	Config *config.Config
	DB     *gorm.DB
	Hub    *gateway.Hub
	Router *mux.Router
}

func ProvideConfig() *config.Config {
	return config.Load()
}

// ProvideMessageRepository selects the message store driver. Identity
// data always lives in MySQL, so the user repository is shared by both
// drivers.
func ProvideMessageRepository(cfg *config.Config, db *gorm.DB, users repository.UserRepository) (repository.MessageRepository, error) {
	if cfg.StoreDriver() == "mongo" {
		mdb, err := dbmongo.NewMongo(cfg)
		if err != nil {
			return nil, err
		}
		return dbmongo.NewMessageStore(mdb, users), nil
	}
	return repository.NewMessageRepository(db, users), nil
}

// ProvideChatService builds the submit core and binds it to the hub.
// The hub is constructed first and referenced by the service as its
// broadcaster; the service is then attached so protocol events reach it.
// One explicit handle, injected at startup — no process-global.
func ProvideChatService(repo repository.MessageRepository, hub *gateway.Hub) service.ChatService {
	svc := service.NewChatService(repo, hub)
	hub.Attach(svc)
	return svc
}

func ProvideRouter(cfg *config.Config, authHandler *auth.Handler, messages *handler.MessageHandler, hub *gateway.Hub, verifier auth.Verifier) *mux.Router {
	return handler.NewRouter(cfg, authHandler, messages, hub, verifier)
}

var _ http.Handler = (*gateway.Hub)(nil)
