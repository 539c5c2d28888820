package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/scoula/omok-server/internal/dependencies/clock"
	"github.com/scoula/omok-server/internal/dependencies/random"
	"github.com/scoula/omok-server/internal/directory"
	"github.com/scoula/omok-server/internal/directory/memory"
	redisdir "github.com/scoula/omok-server/internal/directory/redis"
	"github.com/scoula/omok-server/internal/dispatch"
	"github.com/scoula/omok-server/internal/registry"
	"github.com/scoula/omok-server/internal/ws"
)

// Directory backend constants
const (
	DirectoryTypeMemory = "memory"
	DirectoryTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Room listing backend
	Directory directory.Directory

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core components
	Registry   *registry.Registry
	Hub        *ws.Hub
	Dispatcher *dispatch.Dispatcher

	redisStore *redisdir.Store
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// DirectoryType selects the listing backend ("memory" or "redis")
	// If empty, defaults to "memory"
	DirectoryType string
	// RedisConfig holds Redis connection settings (required if DirectoryType is "redis")
	RedisConfig *redisdir.Config
	// StartDelay is the deferred game-start delay
	// If zero, defaults to 500ms
	StartDelay time.Duration
	// TurnLimit is the per-turn time budget
	// If zero, defaults to 30s
	TurnLimit time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var (
		dir        directory.Directory
		redisStore *redisdir.Store
	)
	directoryType := cfg.DirectoryType
	if directoryType == "" {
		directoryType = DirectoryTypeMemory
	}

	switch directoryType {
	case DirectoryTypeMemory:
		dir = memory.New()
	case DirectoryTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when DirectoryType is redis")
		}
		store, err := redisdir.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		dir = store
		redisStore = store
	default:
		return nil, errors.New("invalid DirectoryType: must be 'memory' or 'redis'")
	}

	startDelay := cfg.StartDelay
	if startDelay == 0 {
		startDelay = 500 * time.Millisecond
	}
	turnLimit := cfg.TurnLimit
	if turnLimit == 0 {
		turnLimit = 30 * time.Second
	}

	app := newWithDependencies(dir, clock.New(), random.New(), startDelay, turnLimit, logger)
	app.redisStore = redisStore
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	dir directory.Directory,
	clk clock.Clock,
	rnd random.Random,
	startDelay time.Duration,
	turnLimit time.Duration,
	logger *slog.Logger,
) *App {
	reg := registry.New(dir, clk, logger)
	hub := ws.NewHub(logger)
	dispatcher := dispatch.New(reg, hub, clk, rnd, startDelay, turnLimit, logger)

	return &App{
		Directory:  dir,
		Clock:      clk,
		Random:     rnd,
		Registry:   reg,
		Hub:        hub,
		Dispatcher: dispatcher,
	}
}

// Close releases the app's resources: pending deferred starts are disarmed
// and the Redis connection, if any, is closed.
func (a *App) Close() error {
	a.Dispatcher.Shutdown()
	if a.redisStore != nil {
		return a.redisStore.Close()
	}
	return nil
}
