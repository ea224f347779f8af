package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"reelfeed/api"
	"reelfeed/config"
	"reelfeed/handlers"
	"reelfeed/internal/storage"
	"reelfeed/services/browse"
	"reelfeed/services/catalog"
	"reelfeed/services/session"
	"reelfeed/services/watchlist"

	"github.com/gorilla/mux"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	portOverride := flag.Int("port", 0, "override server port from config")
	flag.Parse()

	fmt.Println("reelfeed backend starting...")

	configPath := os.Getenv("REELFEED_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			log.SetOutput(io.MultiWriter(os.Stdout, fileWriter))
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}

	if settings.Catalog.APIKey == "" {
		log.Printf("Warning: no catalog API key configured, browse requests will fail until one is set in %s", configPath)
	}

	// Durable state lives under the storage directory, scoped state in memory
	durableStore, err := storage.NewFileStore(nil, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to open storage directory: %v", err)
	}
	scopedStore := storage.NewMemoryStore()

	cache := catalog.NewResponseCache()
	client := catalog.NewClient(settings.Catalog.BaseURL, settings.Catalog.APIKey, nil, cache)

	var auth session.Authenticator
	if settings.Auth.Email != "" {
		auth, err = session.NewLocalAuthenticator(settings.Auth.Email, settings.Auth.Password)
		if err != nil {
			log.Fatalf("failed to init authenticator: %v", err)
		}
	}

	sessionSvc, err := session.NewService(durableStore, scopedStore, auth)
	if err != nil {
		log.Fatalf("failed to init session service: %v", err)
	}
	if sessionSvc.InitiallySignedIn() {
		log.Println("[session] resuming remembered session")
	}

	watchlistSvc, err := watchlist.NewService(durableStore)
	if err != nil {
		log.Fatalf("failed to init watchlist service: %v", err)
	}

	browseSvc := browse.NewService(client)
	if settings.Search.DebounceMS > 0 {
		browseSvc.SetSearchDelay(time.Duration(settings.Search.DebounceMS) * time.Millisecond)
	}

	r := mux.NewRouter()
	api.Register(
		r,
		handlers.NewAuthHandler(sessionSvc),
		handlers.NewBrowseHandler(browseSvc),
		handlers.NewWatchlistHandler(watchlistSvc),
		sessionSvc,
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	fmt.Printf("Server starting on %s\n", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("Shutdown signal received, cleaning up...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
