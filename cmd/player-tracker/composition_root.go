package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"go-player-tracker/internal/cache"
	"go-player-tracker/internal/cache/l1"
	"go-player-tracker/internal/cache/l2"
	"go-player-tracker/internal/cache/multi"
	"go-player-tracker/internal/cache/noop"
	"go-player-tracker/internal/config"
	"go-player-tracker/internal/httpserver"
	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/persister"
	"go-player-tracker/internal/progress"
	"go-player-tracker/internal/registrar"
	"go-player-tracker/internal/snapshotcache"
	"go-player-tracker/internal/storage/sqlite"
	"go-player-tracker/internal/timestamps"
	"go-player-tracker/internal/tracker"
	"go-player-tracker/internal/upstream/runemetrics"
)

// fallbackStoreSizeMB caps the in-process store used when KeyDB is unavailable
const fallbackStoreSizeMB = 256

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection and service initialization.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Env    *config.Env
	Logger *zap.Logger
	Clock  clockwork.Clock

	// Key-value components
	L1Cache       interfaces.Cache
	L2Cache       interfaces.Cache
	KeyBuilder    interfaces.KeyBuilder
	Codec         *snapshotcache.Codec
	SnapshotCache *snapshotcache.Cache
	Timestamps    *timestamps.Store

	// Relational storage
	Store *sqlite.Store

	// Services
	Upstream   *runemetrics.Client
	Registrar  *registrar.Registrar
	Persister  *persister.Persister
	Engine     *tracker.Engine
	Progress   *progress.Service
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration (file, then environment overrides)
// 3. Key-value components (L1, L2, snapshot cache, timestamps)
// 4. Relational storage (SQLite with migrations)
// 5. Services (upstream client, registrar, persister, engine, progress)
// 6. HTTP Server (uses all above components)
func NewCompositionRoot(ctx context.Context) (*CompositionRoot, error) {
	root := &CompositionRoot{Clock: clockwork.NewRealClock()}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		_ = root.Cleanup()
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	if err := root.initStorage(ctx); err != nil {
		_ = root.Cleanup()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	root.initServices()
	root.initHTTPServer()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	redis.SetLogger(NewRedisLogger(logger))
	return nil
}

// loadConfig loads the configuration file and applies environment overrides
func (r *CompositionRoot) loadConfig() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(env.ConfigFile, r.Logger)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(env)
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.Env = env
	r.Config = cfg
	return nil
}

// initCacheComponents initializes all key-value components
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Cache(); err != nil {
		return fmt.Errorf("failed to initialize L1 cache: %w", err)
	}

	if err := r.initL2Cache(); err != nil {
		return fmt.Errorf("failed to initialize L2 cache: %w", err)
	}

	r.KeyBuilder = cache.NewKeyBuilder()

	codec, err := snapshotcache.NewCodec(r.Config.SnapshotCache.Compression)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot codec: %w", err)
	}
	r.Codec = codec

	levels := multi.NewMultiCache([]interfaces.Cache{r.L1Cache, r.L2Cache}, r.Logger)
	r.SnapshotCache = snapshotcache.New(levels, r.KeyBuilder, r.Codec, r.Logger)
	r.Logger.Info("Snapshot cache initialized",
		zap.Int("levels", levels.GetCacheCount()),
		zap.Bool("compression", r.Config.SnapshotCache.Compression))

	// timestamps must survive restarts, so they bypass the volatile L1
	r.Timestamps = timestamps.NewStore(r.L2Cache, r.Logger)

	return nil
}

// initL1Cache initializes the L1 cache (BigCache)
func (r *CompositionRoot) initL1Cache() error {
	if r.Config.L1.Enabled {
		l1Cache, err := l1.NewBigCache(r.Config.L1.Size, r.Config.GetL1LifeWindow(), r.Logger)
		if err != nil {
			return err
		}
		r.L1Cache = l1Cache
		r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.L1.Size))
	} else {
		r.L1Cache = noop.NewNoOpCache()
		r.Logger.Info("BigCache (L1) disabled")
	}
	return nil
}

// initL2Cache initializes the durable key-value level (KeyDB). Without KeyDB
// an unbounded in-process store takes its place and state is lost on restart.
func (r *CompositionRoot) initL2Cache() error {
	if r.Config.L2.Enabled {
		keydbURL := GetKeyDBURL(r.Env, r.Logger)

		keydbClient, err := l2.NewRedisKeyDbClient(r.Config, keydbURL, r.Logger)
		if err == nil {
			r.L2Cache = l2.NewKeyDBCache(r.Config, keydbClient, r.Logger)
			r.Logger.Info("KeyDB (L2) initialized", zap.String("keydb_url", keydbURL))
			return nil
		}
		r.Logger.Warn("Failed to connect to KeyDB, falling back to in-process store",
			zap.String("keydb_url", keydbURL),
			zap.Error(err))
	} else {
		r.Logger.Info("KeyDB (L2) disabled, using in-process store")
	}

	fallback, err := l1.NewBigCache(fallbackStoreSizeMB, 0, r.Logger, l1.WithMetricsLevel("l2_fallback"))
	if err != nil {
		return err
	}
	r.L2Cache = fallback
	return nil
}

// initStorage opens the relational snapshot store
func (r *CompositionRoot) initStorage(ctx context.Context) error {
	store, err := sqlite.Open(ctx, r.Config.Storage.SQLitePath, r.Logger)
	if err != nil {
		return err
	}
	r.Store = store
	r.Logger.Info("SQLite storage initialized", zap.String("path", r.Config.Storage.SQLitePath))
	return nil
}

// initServices initializes application services
func (r *CompositionRoot) initServices() {
	r.Upstream = runemetrics.NewClient(&r.Config.Upstream, r.Logger)
	r.Registrar = registrar.New(r.Store, r.Upstream, r.Clock, r.Logger)
	r.Persister = persister.New(r.Store, r.Logger)

	r.Engine = tracker.NewEngine(
		r.Timestamps,
		r.SnapshotCache,
		r.Upstream,
		r.Persister,
		r.KeyBuilder,
		r.Clock,
		tracker.Options{
			TTL:          r.Config.GetAutoRefresh(),
			ManualTTL:    r.Config.GetManualRefresh(),
			FetchTimeout: r.Config.GetUpstreamTimeout(),
		},
		r.Logger,
	)

	r.Progress = progress.New(r.Store, r.Clock)
}

// initHTTPServer initializes the HTTP server
func (r *CompositionRoot) initHTTPServer() {
	r.HTTPServer = httpserver.NewServer(
		r.Registrar,
		r.Engine,
		r.Progress,
		r.Store,
		r.Logger,
	)
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.Store != nil {
		if err := r.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close storage: %w", err))
		}
	}

	if r.Codec != nil {
		r.Codec.Close()
	}

	for _, level := range []interfaces.Cache{r.L1Cache, r.L2Cache} {
		switch c := level.(type) {
		case *l1.BigCache:
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close in-process cache: %w", err))
			}
		case *l2.KeyDBCache:
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close KeyDB cache: %w", err))
			}
		}
	}

	if r.Logger != nil {
		// syncing stderr fails on some platforms; not worth reporting
		_ = r.Logger.Sync()
	}

	return errors.Join(errs...)
}
