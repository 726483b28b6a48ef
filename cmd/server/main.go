package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/nicholasjackson/env"

	"github.com/aurelia-jewels/catalog-api/internal/admin"
	"github.com/aurelia-jewels/catalog-api/internal/auth"
	"github.com/aurelia-jewels/catalog-api/internal/blob"
	"github.com/aurelia-jewels/catalog-api/internal/domain"
	"github.com/aurelia-jewels/catalog-api/internal/events"
	"github.com/aurelia-jewels/catalog-api/internal/repository"
	"github.com/aurelia-jewels/catalog-api/internal/service"
	httpTransport "github.com/aurelia-jewels/catalog-api/internal/transport/http"
	websocketTransport "github.com/aurelia-jewels/catalog-api/internal/transport/websocket"
)

// Environment variables
var (
	bindAddress = env.String("BIND_ADDRESS", false,
		":9090", "Bind address for the server")
	logLevel = env.String("LOG_LEVEL", false,
		"debug", "Log output level for the server [debug, info, trace]")
	publicBaseURL = env.String("PUBLIC_BASE_URL", false,
		"http://localhost:9090", "Public origin stored images are served from")
	imageStorePath = env.String("IMAGE_STORE_PATH", false,
		"./imagestore", "Base directory for the image blob store")
	maxImageSize = env.Int("MAX_IMAGE_SIZE", false,
		5*1024*1024, "Maximum image size in bytes")
	adminPassword = env.String("ADMIN_PASSWORD", false,
		"", "Shared admin password, admin surface is disabled when empty")
	jwtSecret = env.String("JWT_SECRET", false,
		"", "Secret for signing admin session tokens")
	upstreamURL = env.String("UPSTREAM_URL", false,
		"", "Optional remote product store, bundled catalog is the fallback")
)

func main() {
	// .env is optional, real environment wins
	godotenv.Load()
	env.Parse()

	// Initialize the logger
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "catalog-api",
		Level: hclog.LevelFromString(*logLevel),
	})

	standardLogger := logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})

	if *adminPassword == "" || *jwtSecret == "" {
		logger.Warn("ADMIN_PASSWORD or JWT_SECRET not set, admin surface will reject all logins")
	}

	// Event bus shared between the write path, the catalog service and
	// the WebSocket feed
	eventBus := events.NewEventBus[any]()

	// Blob store for product images
	store, err := blob.NewLocal(*imageStorePath, *publicBaseURL, *maxImageSize)
	if err != nil {
		logger.Error("Unable to initialize image store", "error", err)
		os.Exit(1)
	}

	// Product repository: bundled catalog, optionally behind a remote
	// store with the bundled data as fallback
	var repo repository.ProductRepository = repository.NewMemoryProductRepository()
	if *upstreamURL != "" {
		remote := repository.NewRESTProductRepository(*upstreamURL, logger.Named("remote-store"))
		repo = repository.NewFallbackProductRepository(remote, repo, logger.Named("fallback-store"))
	}

	// Catalog read side
	cs := service.NewCatalogService(repo, eventBus, logger.Named("catalog-service"))
	defer cs.Close()

	// Admin write path
	synchronizer := admin.NewSynchronizer(repo, store, eventBus, logger.Named("admin-sync"))
	adminAuth := auth.NewAdmin(*adminPassword, *jwtSecret)

	// Request validation
	validation := domain.NewValidation()

	// HTTP handlers
	ph := httpTransport.NewProductsHandler(cs, synchronizer, validation, logger.Named("products-handler"))
	ch := httpTransport.NewCatalogHandler(cs, logger.Named("catalog-handler"))
	ih := httpTransport.NewImagesHandler(store, logger.Named("images-handler"))
	ah := httpTransport.NewAdminHandler(adminAuth, logger.Named("admin-handler"))
	mw := httpTransport.NewMiddleware(logger.Named("middleware"), adminAuth)
	wsh := websocketTransport.NewHandler(logger.Named("websocket-handler"), eventBus)

	router := httpTransport.NewRouter(ph, ch, ih, ah, mw, wsh, logger)

	// Create the HTTP server
	server := &http.Server{
		Addr:         *bindAddress,
		Handler:      router,
		ErrorLog:     standardLogger,
		IdleTimeout:  120 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start the server in a new goroutine
	go func() {
		logger.Info("Starting server", "bind_address", *bindAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Error starting server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	<-sigChan
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := cs.Close(); err != nil {
		logger.Error("Error closing catalog service", "error", err)
	}

	server.Shutdown(shutdownCtx)
}
