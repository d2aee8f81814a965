package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/highwayhustle/backend/internal/api/handler"
	"github.com/highwayhustle/backend/internal/api/middleware"
	"github.com/highwayhustle/backend/internal/api/response"
	"github.com/highwayhustle/backend/internal/dependencies/clock"
	"github.com/highwayhustle/backend/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	Clock            clock.Clock
	PlayerController *player.Controller
	LedgerStatus     handler.LedgerStatusReporter
	AllowedOrigins   []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.PlayerController)
	campaignHandler := handler.NewCampaignHandler(cfg.PlayerController)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	corsMiddleware := middleware.CORS(cfg.AllowedOrigins)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(corsMiddleware)

	// Login and full-state routes. GET /player/all creates the record
	// when the identifier is unknown; every other read is a plain lookup.
	api.HandleFunc("/player/login", playerHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/player/all", playerHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/player/all", playerHandler.UpdateAll).Methods(http.MethodPost)

	// Per-section routes
	api.HandleFunc("/player/privy", playerHandler.GetIdentity).Methods(http.MethodGet)
	api.HandleFunc("/player/privy", playerHandler.UpdateIdentity).Methods(http.MethodPost)
	api.HandleFunc("/player/game", playerHandler.GetEconomy).Methods(http.MethodGet)
	api.HandleFunc("/player/game", playerHandler.UpdateEconomy).Methods(http.MethodPost)
	api.HandleFunc("/player/gamemode", playerHandler.GetScores).Methods(http.MethodGet)
	api.HandleFunc("/player/gamemode", playerHandler.UpdateScores).Methods(http.MethodPost)
	api.HandleFunc("/player/vehicle", playerHandler.GetVehicles).Methods(http.MethodGet)
	api.HandleFunc("/player/vehicle", playerHandler.UpdateVehicles).Methods(http.MethodPost)

	// Listings and external integrations
	api.HandleFunc("/check-user-achievement", campaignHandler.CheckAchievement).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", campaignHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/users", campaignHandler.Users).Methods(http.MethodGet)

	if cfg.LedgerStatus != nil {
		statusHandler := handler.NewStatusHandler(cfg.LedgerStatus)
		api.HandleFunc("/ledger/status", statusHandler.LedgerStatus).Methods(http.MethodGet)
	}

	// Health check endpoint lives outside /api for load balancer probes
	r.HandleFunc("/health", healthHandler(cfg.Clock)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	return r
}

func healthHandler(clk clock.Clock) http.HandlerFunc {
	started := clk.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		now := clk.Now()
		response.JSON(w, http.StatusOK, response.HealthResponse{
			Status:    "healthy",
			Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z"),
			Uptime:    now.Sub(started).Seconds(),
		})
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Endpoint not found",
	})
}
