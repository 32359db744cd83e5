package directions

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the directions service.
type ServiceConfig struct {
	// Provider is the directions data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache directions data (default: 5 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors (default: 15 minutes).
	StaleIfErrorTTL time.Duration

	// CleanupInterval is how often to clean up expired entries (default: 5 minutes).
	CleanupInterval time.Duration
}

// Service provides directions data with caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	cleanupInterval time.Duration

	metrics *serviceMetrics

	mu          sync.RWMutex
	cache       map[string]*cachedRoute
	lastCleanup time.Time
}

type cachedRoute struct {
	route     *Route
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new directions service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 15 * time.Minute
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval == 0 {
		cleanupInterval = 5 * time.Minute
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		cleanupInterval: cleanupInterval,
		metrics:         newServiceMetrics(),
		cache:           make(map[string]*cachedRoute),
	}
}

// GetRoute returns the best route between two places for one travel mode.
// Uses cached data if available and not expired.
func (s *Service) GetRoute(ctx context.Context, req Request) (*Route, error) {
	if req.Origin == "" || req.Destination == "" {
		return nil, &Error{
			Provider: s.provider.Name(),
			Code:     "MISSING_PLACES",
			Message:  "origin and destination are required",
			Err:      ErrInvalidRequest,
		}
	}

	cacheKey := s.cacheKey(req)

	// Check cache (read lock)
	s.mu.RLock()
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		s.metrics.recordCacheHit(ctx, s.provider.Name(), req.Mode)
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit for directions")
		return cached.route, nil
	}
	s.mu.RUnlock()

	// Fetch from provider
	return s.fetchRoute(ctx, req, cacheKey)
}

// fetchRoute fetches a route from the provider and updates the cache.
func (s *Service) fetchRoute(ctx context.Context, req Request, cacheKey string) (*Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check cache (prevents thundering herd)
	if cached, ok := s.cache[cacheKey]; ok && time.Now().Before(cached.expiresAt) {
		s.metrics.recordCacheHit(ctx, s.provider.Name(), req.Mode)
		s.logger.Debug().
			Str("cache_key", cacheKey).
			Msg("cache hit after double-check")
		return cached.route, nil
	}

	s.metrics.recordCacheMiss(ctx, s.provider.Name(), req.Mode)
	s.logger.Debug().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Str("mode", req.Mode).
		Str("provider", s.provider.Name()).
		Msg("fetching directions from provider")

	start := time.Now()
	route, err := s.provider.GetRoute(ctx, req)
	s.metrics.recordRequest(ctx, s.provider.Name(), req.Mode, time.Since(start), err)
	if err != nil {
		s.logger.Error().Err(err).
			Str("origin", req.Origin).
			Str("destination", req.Destination).
			Str("mode", req.Mode).
			Msg("failed to fetch directions")

		// Check for stale data (stale-if-error pattern)
		if cached, ok := s.cache[cacheKey]; ok {
			if time.Now().Before(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
				s.logger.Warn().
					Time("fetched_at", cached.fetchedAt).
					Str("cache_key", cacheKey).
					Msg("serving stale directions data due to provider error")
				return cached.route, nil
			}
		}

		return nil, err
	}

	// Update cache
	now := time.Now()
	s.cache[cacheKey] = &cachedRoute{
		route:     route,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	// Periodic cleanup
	s.cleanupIfNeeded()

	return route, nil
}

// cacheKey generates a cache key for a directions request.
// Place names are matched case-insensitively after trimming; mode is
// part of the key so each travel mode caches independently.
func (s *Service) cacheKey(req Request) string {
	normalize := func(place string) string {
		return strings.ToLower(strings.TrimSpace(place))
	}
	return normalize(req.Origin) + "|" + normalize(req.Destination) + "|" + req.Mode
}

// cleanupIfNeeded removes expired entries if cleanup interval has passed.
func (s *Service) cleanupIfNeeded() {
	now := time.Now()
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}

	s.lastCleanup = now
	expired := 0

	for key, cached := range s.cache {
		// Remove entries that are past the stale-if-error window
		if now.After(cached.fetchedAt.Add(s.staleIfErrorTTL)) {
			delete(s.cache, key)
			expired++
		}
	}

	if expired > 0 {
		s.logger.Debug().
			Int("expired_entries", expired).
			Msg("cleaned up expired directions cache entries")
	}
}

// InvalidateCache clears all cached data.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedRoute)
}

// CacheStats returns cache statistics.
func (s *Service) CacheStats() CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	fresh := 0
	stale := 0

	for _, c := range s.cache {
		if now.Before(c.expiresAt) {
			fresh++
		} else if now.Before(c.fetchedAt.Add(s.staleIfErrorTTL)) {
			stale++
		}
	}

	return CacheStats{
		TotalEntries: len(s.cache),
		FreshEntries: fresh,
		StaleEntries: stale,
		Provider:     s.provider.Name(),
	}
}

// CacheStats contains cache statistics.
type CacheStats struct {
	TotalEntries int
	FreshEntries int
	StaleEntries int
	Provider     string
}

// ProviderName returns the name of the underlying provider.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}
