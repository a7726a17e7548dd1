package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/internal/api"
	"stayhub/internal/app/service"
	"stayhub/internal/domain/repository"
	"stayhub/internal/platform/cache"
	"stayhub/internal/platform/config"
	"stayhub/internal/platform/database"
	"stayhub/internal/platform/media"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Database
	database.Connect()
	defer database.Close()

	// 3. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 4. Initialize media host client
	mediaClient, err := media.NewS3Client(context.Background())
	if err != nil {
		log.Fatalf("Could not initialize media client: %v", err)
	}
	fmt.Println("Media host client initialized.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	roomRepo := repository.NewPgRoomRepository(database.DB)

	// 6. Initialize Services
	userService := service.NewUserService(userRepo)
	roomService := service.NewRoomService(roomRepo, userRepo, mediaClient)
	mediaService := service.NewMediaService(userRepo, roomRepo, mediaClient)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(userService, roomService, mediaService, userRepo, roomRepo, cache.RDB)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
