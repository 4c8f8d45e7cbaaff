package handler

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"supportchat/internal/auth"
	"supportchat/internal/config"
)

// NewRouter assembles the full HTTP surface: public auth endpoints, the
// authenticated message API, and the websocket upgrade route. The hub
// does its own credential check during the handshake, so /ws sits outside
// the middleware chain.
func NewRouter(cfg *config.Config, authHandler *auth.Handler, messages *MessageHandler, hub http.Handler, verifier auth.Verifier) *mux.Router {
	r := mux.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.HandleFunc("/api/auth/local", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/local/register", authHandler.Register).Methods(http.MethodPost)

	api := r.PathPrefix("/api/messages").Subrouter()
	api.Use(auth.Middleware(verifier))
	api.HandleFunc("", messages.Create).Methods(http.MethodPost)
	api.HandleFunc("/user/{userId}", messages.FindByUser).Methods(http.MethodGet)
	api.HandleFunc("/chats/all", messages.AllChats).Methods(http.MethodGet)
	api.HandleFunc("/support/send", messages.SupportSend).Methods(http.MethodPost)

	r.Handle("/ws", hub)

	return r
}
