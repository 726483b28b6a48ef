package http

import (
	"net/http"
	"path/filepath"
	"runtime"

	"github.com/go-openapi/runtime/middleware"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	websocketTransport "github.com/aurelia-jewels/catalog-api/internal/transport/websocket"
)

func NewRouter(
	ph *ProductsHandler,
	ch *CatalogHandler,
	ih *ImagesHandler,
	ah *AdminHandler,
	mw *Middleware,
	wsh *websocketTransport.Handler,
	logger hclog.Logger,
) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(mw.RecoverMiddleware)
	router.Use(mw.LoggingMiddleware)
	router.Use(mw.CORSMiddleware)

	// Unhandled methods get a JSON 405
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Public read surface
	router.HandleFunc("/api/products", ph.Get).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/catalog", ch.Filter).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/facets", ch.Facets).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/images", ih.Lookup).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/admin/login", ah.Login).Methods("POST", "OPTIONS")
	router.HandleFunc("/ws", wsh.HandleWebSocket).Methods("GET")

	// Stored images, compressed when the client accepts it
	router.Handle("/images/{path:.+}",
		handlers.CompressHandler(http.HandlerFunc(ih.Serve))).Methods("GET")

	// Admin-only write surface
	writeRouter := router.Methods("POST", "PUT", "DELETE").Subrouter()
	writeRouter.HandleFunc("/api/products", ph.Create).Methods("POST")
	writeRouter.HandleFunc("/api/products", ph.Update).Methods("PUT")
	writeRouter.HandleFunc("/api/products", ph.Delete).Methods("DELETE")
	writeRouter.HandleFunc("/api/images", ih.Upload).Methods("POST")
	writeRouter.HandleFunc("/api/images", ih.Delete).Methods("DELETE")
	writeRouter.Use(mw.AdminOnlyMiddleware)

	// Swagger UI and specification routes
	_, filename, _, _ := runtime.Caller(0)
	basePath := filepath.Dir(filename)                   // .../internal/transport/http
	rootDir := filepath.Join(basePath, "..", "..", "..") // repository root
	swaggerFilePath := filepath.Join(rootDir, "swagger.yaml")

	router.HandleFunc("/swagger.yaml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, swaggerFilePath)
	}).Methods("GET")

	swaggerOpts := middleware.RedocOpts{SpecURL: "/swagger.yaml"}
	router.Handle("/docs", middleware.Redoc(swaggerOpts, nil)).Methods("GET")

	return router
}
