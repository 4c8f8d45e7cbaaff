package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supportchat/internal/dbmysql"
	"supportchat/internal/di"
)

func main() {
	log.Println("Starting Chat Service...")

	app, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize chat service: %v", err)
	}

	if app.Config.StoreDriver() != "mongo" {
		if err := app.DB.AutoMigrate(&dbmysql.User{}, &dbmysql.Message{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("database migration completed")
	}

	addr := app.Config.Server.Host + ":" + app.Config.Server.Port
	server := &http.Server{
		Addr:    addr,
		Handler: app.Router,
		// No WriteTimeout: it would sever long-lived websocket
		// connections on /ws.
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Chat Service running on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Chat Service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Chat Service stopped")
}
