package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/scoula/omok-server/internal/api/handler"
	apimiddleware "github.com/scoula/omok-server/internal/api/middleware"
	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/dispatch"
	"github.com/scoula/omok-server/internal/middleware"
	"github.com/scoula/omok-server/internal/registry"
	"github.com/scoula/omok-server/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Registry   *registry.Registry
	Directory  directory.Directory
	Hub        *ws.Hub
	Dispatcher *dispatch.Dispatcher
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Registry, cfg.Directory, cfg.Hub, cfg.Dispatcher, cfg.Logger)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Room routes
	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}/join", roomHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/rooms/{id}/leave", roomHandler.Leave).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Websocket route, outside the API prefix
	r.Handle("/ws/rooms/{id}",
		recoveryMiddleware(loggingMiddleware(http.HandlerFunc(roomHandler.Socket)))).
		Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
