package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/webdrive/webdrive_api/internal/api"
	"github.com/webdrive/webdrive_api/internal/auth"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/identity"
	"github.com/webdrive/webdrive_api/internal/kvstore"
	"github.com/webdrive/webdrive_api/internal/logging"
	"github.com/webdrive/webdrive_api/internal/records"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg)

	store, err := kvstore.NewFileStore(cfg, logger)
	if err != nil {
		log.Fatalf("failed to open record store: %v", err)
	}

	authManager, err := auth.NewJWTManager(cfg)
	if err != nil {
		store.Close()
		log.Fatalf("failed to create auth manager: %v", err)
	}

	provider := identity.NewClient(cfg.Identity, logger)
	files := records.NewFileManager(cfg, store, logger)
	profiles := records.NewProfileManager(store, logger)

	server := api.NewServer(cfg, files, profiles, provider, authManager, logger)

	go func() {
		if err := server.Start(); err != nil {
			store.Close()
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	signCh := make(chan os.Signal, 1)
	signal.Notify(signCh, os.Interrupt, syscall.SIGTERM)
	<-signCh

	log.Println("shutting down gracefully...")
	if err := server.Shutdown(); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	store.Close()
}
