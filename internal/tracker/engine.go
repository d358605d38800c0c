package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/metrics"
	"go-player-tracker/internal/models"
)

// Ensure Engine implements interfaces.FreshnessEngine
var _ interfaces.FreshnessEngine = (*Engine)(nil)

// Options configures an Engine
type Options struct {
	// TTL is the automatic refresh interval
	TTL time.Duration
	// ManualTTL is the cooldown between forced refreshes
	ManualTTL time.Duration
	// FetchTimeout bounds each upstream fetch
	FetchTimeout time.Duration
}

// Engine serves the freshest available profile of a player, fetching from
// upstream only when the freshness policy requires it
type Engine struct {
	timestamps interfaces.TimestampStore
	cache      interfaces.SnapshotCache
	fetcher    interfaces.ProfileFetcher
	persister  interfaces.SnapshotPersister
	keys       interfaces.KeyBuilder
	clock      clockwork.Clock
	opts       Options
	logger     *zap.Logger

	flights singleflight.Group
}

// NewEngine creates an Engine
func NewEngine(
	timestamps interfaces.TimestampStore,
	cache interfaces.SnapshotCache,
	fetcher interfaces.ProfileFetcher,
	persister interfaces.SnapshotPersister,
	keys interfaces.KeyBuilder,
	clock clockwork.Clock,
	opts Options,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		timestamps: timestamps,
		cache:      cache,
		fetcher:    fetcher,
		persister:  persister,
		keys:       keys,
		clock:      clock,
		opts:       opts,
		logger:     logger,
	}
}

// GetFreshestData returns the player's profile from cache or upstream.
//
// The freshness decision and cache read happen per caller. Live refreshes are
// shared: concurrent callers that need one for the same player join a single
// fetch. The shared refresh is not cancelled when a caller gives up; callers
// still return on their own ctx.
func (e *Engine) GetFreshestData(ctx context.Context, player *models.Player, manual bool) (*models.Profile, error) {
	metrics.RecordRequest(manual)
	now := e.clock.Now()

	lastFetch, lastManualRefresh, err := e.readTimestamps(ctx, player.Username)
	if err != nil {
		return nil, err
	}

	decision := Decide(now.UnixMilli(), lastFetch, lastManualRefresh, manual, e.opts.TTL, e.opts.ManualTTL)
	metrics.RecordDecision(decision.String())

	if decision == DecisionUseCache {
		if profile, ok := e.cache.Get(ctx, player.Username); ok {
			return profile, nil
		}
		e.logger.Debug("Cached profile missing despite fresh timestamp, fetching",
			zap.String("player", player.Username))
		decision = DecisionFetchAndUpdateFetchOnly
	}

	return e.sharedRefresh(ctx, player, now, decision == DecisionFetchAndUpdateBoth)
}

// refreshResult is the outcome of one live refresh
type refreshResult struct {
	profile       *models.Profile
	at            time.Time
	manualUpdated bool
}

func (e *Engine) sharedRefresh(ctx context.Context, player *models.Player, now time.Time, updateManual bool) (*models.Profile, error) {
	ch := e.flights.DoChan(player.Username, func() (interface{}, error) {
		return e.refresh(context.WithoutCancel(ctx), player, now, updateManual)
	})

	select {
	case res := <-ch:
		if res.Shared {
			metrics.RecordSharedFetch()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		result := res.Val.(*refreshResult)
		if updateManual && !result.manualUpdated {
			// joined an automatic refresh: the live fetch still spends the manual cooldown
			e.storeTimestamp(context.WithoutCancel(ctx), player.Username,
				e.keys.LastManualRefreshKey(player.Username), result.at.UnixMilli())
		}
		return result.profile, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// refresh fetches, persists, then updates cache and timestamps. Nothing is
// written unless both the fetch and the persist succeed.
func (e *Engine) refresh(ctx context.Context, player *models.Player, now time.Time, updateManual bool) (*refreshResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.opts.FetchTimeout)
	profile, err := e.fetcher.FetchProfile(fetchCtx, player.Username)
	cancel()
	if err != nil {
		e.logger.Warn("Live fetch failed",
			zap.String("player", player.Username),
			zap.Bool("manual", updateManual),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}

	if err := e.persister.Persist(ctx, player, profile, now); err != nil {
		e.logger.Error("Snapshot persistence failed", zap.String("player", player.Username), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}

	if err := e.cache.Set(ctx, player.Username, profile); err != nil {
		e.logger.Warn("Failed to cache profile", zap.String("player", player.Username), zap.Error(err))
		metrics.RecordCacheError("snapshot", "write")
	}

	ms := now.UnixMilli()
	e.storeTimestamp(ctx, player.Username, e.keys.LastFetchKey(player.Username), ms)
	if updateManual {
		e.storeTimestamp(ctx, player.Username, e.keys.LastManualRefreshKey(player.Username), ms)
	}

	e.logger.Info("Refreshed player",
		zap.String("player", player.Username),
		zap.Bool("manual", updateManual),
		zap.Int64("total_xp", profile.Skills.XP))
	return &refreshResult{profile: profile, at: now, manualUpdated: updateManual}, nil
}

// storeTimestamp writes a bookkeeping timestamp; failures only cost an extra fetch later
func (e *Engine) storeTimestamp(ctx context.Context, username, key string, ms int64) {
	if err := e.timestamps.Set(ctx, key, ms); err != nil {
		e.logger.Warn("Failed to store timestamp",
			zap.String("player", username),
			zap.String("key", key),
			zap.Error(err))
		metrics.RecordCacheError("timestamps", "write")
	}
}

// LastRefresh returns when the player was last fetched live, or the zero time
func (e *Engine) LastRefresh(ctx context.Context, player *models.Player) (time.Time, error) {
	lastFetch, err := e.timestamps.Get(ctx, e.keys.LastFetchKey(player.Username))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read last fetch: %w", err)
	}
	if lastFetch == 0 {
		return time.Time{}, nil
	}
	return time.UnixMilli(lastFetch).UTC(), nil
}

// RefreshInfo reports whether a manual refresh would bypass the cache now
func (e *Engine) RefreshInfo(ctx context.Context, player *models.Player) (models.RefreshInfo, error) {
	last, err := e.LastRefresh(ctx, player)
	if err != nil {
		return models.RefreshInfo{}, err
	}
	lastManualRefresh, err := e.timestamps.Get(ctx, e.keys.LastManualRefreshKey(player.Username))
	if err != nil {
		return models.RefreshInfo{}, fmt.Errorf("failed to read last manual refresh: %w", err)
	}

	var info models.RefreshInfo
	if !last.IsZero() {
		info.LastRefresh = &last
	}

	now := e.clock.Now().UnixMilli()
	if now-lastManualRefresh >= e.opts.ManualTTL.Milliseconds() {
		info.Refreshable = true
		return info, nil
	}

	at := time.UnixMilli(lastManualRefresh).Add(e.opts.ManualTTL).UTC()
	info.RefreshableAt = &at
	return info, nil
}

func (e *Engine) readTimestamps(ctx context.Context, username string) (lastFetch, lastManualRefresh int64, err error) {
	lastFetch, err = e.timestamps.Get(ctx, e.keys.LastFetchKey(username))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read last fetch: %w", err)
	}
	lastManualRefresh, err = e.timestamps.Get(ctx, e.keys.LastManualRefreshKey(username))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read last manual refresh: %w", err)
	}
	return lastFetch, lastManualRefresh, nil
}
