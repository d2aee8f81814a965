// Package factory wires the application's components together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/highwayhustle/backend/internal/config"
	"github.com/highwayhustle/backend/internal/dependencies/clock"
	"github.com/highwayhustle/backend/internal/dependencies/random"
	"github.com/highwayhustle/backend/internal/ledger"
	"github.com/highwayhustle/backend/internal/model"
	"github.com/highwayhustle/backend/internal/services/player"
	"github.com/highwayhustle/backend/internal/services/resolver"
	"github.com/highwayhustle/backend/internal/storage"
	"github.com/highwayhustle/backend/internal/storage/memory"
	redisstorage "github.com/highwayhustle/backend/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

const defaultSubmitTimeout = 2 * time.Minute

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Resolver         *resolver.Service
	PlayerController *player.Controller

	// Dispatcher owns the per-category mirror queues. Close it on
	// shutdown to drain queued events.
	Dispatcher *ledger.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// Ledger holds chain mirroring settings. Categories with no
	// contract address configured are not mirrored.
	Ledger config.LedgerConfig
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Build one mirror adapter per configured contract
	mirrors := make(map[model.MirrorCategory]ledger.Mirror)
	for category, address := range cfg.Ledger.ContractAddresses() {
		adapter, err := ledger.New(category, cfg.Ledger.AdapterConfig(address), logger)
		if err != nil {
			return nil, err
		}
		mirrors[category] = adapter
	}
	dispatcher := ledger.NewDispatcher(mirrors, defaultSubmitTimeout, logger)

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, dispatcher, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, rnd random.Random, dispatcher *ledger.Dispatcher, logger *slog.Logger) *App {
	resolverService := resolver.New(store, clk, rnd)
	playerController := player.NewController(store, resolverService, dispatcher, clk, logger)

	return &App{
		Storage:          store,
		Clock:            clk,
		Random:           rnd,
		Resolver:         resolverService,
		PlayerController: playerController,
		Dispatcher:       dispatcher,
	}
}
