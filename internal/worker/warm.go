// Package worker runs background jobs for GreenWays: directions cache
// warming and store health checks, driven by Pub/Sub messages.
package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/api/models"
	"github.com/greenways/greenways/internal/directions"
	"github.com/greenways/greenways/internal/route"
)

// PairSource lists origin/destination pairs worth warming. Satisfied by
// *route.Service.
type PairSource interface {
	RecentPairs(ctx context.Context, limit int) ([]route.Pair, error)
}

// DirectionsService retrieves (and caches) single-mode routes.
// Satisfied by *directions.Service.
type DirectionsService interface {
	GetRoute(ctx context.Context, req directions.Request) (*directions.Route, error)
}

// WarmJobConfig holds configuration for the cache warm job.
type WarmJobConfig struct {
	Pairs      PairSource
	Directions DirectionsService

	// PairLimit caps how many distinct pairs are warmed per run
	// (default: 25).
	PairLimit int

	// Concurrency is the number of pairs warmed in parallel (default: 4).
	Concurrency int

	Logger zerolog.Logger
}

// WarmJob pre-fetches directions for recently saved origin/destination
// pairs so interactive requests hit a warm cache.
type WarmJob struct {
	pairs       PairSource
	directions  DirectionsService
	pairLimit   int
	concurrency int
	logger      zerolog.Logger
}

// WarmResult summarizes a warm run.
type WarmResult struct {
	Pairs      int
	Successful int
	Failed     int
	Duration   time.Duration
}

// NewWarmJob creates a new cache warm job.
func NewWarmJob(cfg WarmJobConfig) *WarmJob {
	pairLimit := cfg.PairLimit
	if pairLimit <= 0 {
		pairLimit = 25
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	return &WarmJob{
		pairs:       cfg.Pairs,
		directions:  cfg.Directions,
		pairLimit:   pairLimit,
		concurrency: concurrency,
		logger:      cfg.Logger.With().Str("component", "warm_job").Logger(),
	}
}

// Run warms the directions cache for recent pairs across all queried
// travel modes. Individual fetch failures are counted, not fatal.
func (j *WarmJob) Run(ctx context.Context) WarmResult {
	start := time.Now()

	pairs, err := j.pairs.RecentPairs(ctx, j.pairLimit)
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to list recent pairs")
		return WarmResult{Duration: time.Since(start)}
	}

	type outcome struct {
		successful int
		failed     int
	}

	sem := make(chan struct{}, j.concurrency)
	results := make(chan outcome, len(pairs))

	for _, pair := range pairs {
		sem <- struct{}{}
		go func(pair route.Pair) {
			defer func() { <-sem }()

			var out outcome
			for _, mode := range models.BaseModes {
				_, err := j.directions.GetRoute(ctx, directions.Request{
					Origin:      pair.Origin,
					Destination: pair.Destination,
					Mode:        string(mode),
				})
				if err != nil {
					out.failed++
					continue
				}
				out.successful++
			}
			results <- out
		}(pair)
	}

	result := WarmResult{Pairs: len(pairs)}
	for range pairs {
		out := <-results
		result.Successful += out.successful
		result.Failed += out.failed
	}
	result.Duration = time.Since(start)

	j.logger.Info().
		Int("pairs", result.Pairs).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("Cache warm run completed")

	return result
}
