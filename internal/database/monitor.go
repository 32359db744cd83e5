package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrUnavailable is returned when the store cannot be reached.
var ErrUnavailable = errors.New("database is unavailable")

// DefaultProbeInterval is how often the monitor pings the store.
const DefaultProbeInterval = 15 * time.Second

// probeTimeout bounds each individual ping.
const probeTimeout = 3 * time.Second

// Monitor tracks store connectivity with a periodic ping so callers can
// check readiness without paying for a round trip on every request.
type Monitor struct {
	pool     *pgxpool.Pool
	interval time.Duration
	logger   zerolog.Logger

	mu        sync.RWMutex
	ready     bool
	lastCheck time.Time
	lastErr   error

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewMonitor creates a store monitor. Call Start to begin probing.
func NewMonitor(pool *pgxpool.Pool, interval time.Duration, logger zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	return &Monitor{
		pool:     pool,
		interval: interval,
		logger:   logger.With().Str("component", "db_monitor").Logger(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start probes once immediately, then on every interval tick until Stop
// is called.
func (m *Monitor) Start(ctx context.Context) {
	m.probe(ctx)

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.probe(ctx)
			case <-m.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the periodic probe.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		<-m.done
	})
}

// Ready reports the last observed connectivity state.
func (m *Monitor) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready
}

// Status returns the last observed state, probe time and error.
func (m *Monitor) Status() (ready bool, lastCheck time.Time, lastErr error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ready, m.lastCheck, m.lastErr
}

// EnsureReady returns nil when the store is reachable. If the cached
// state says unavailable, it makes one inline ping so a recovered store
// is picked up immediately instead of waiting for the next tick. Returns
// ErrUnavailable when the store remains unreachable.
func (m *Monitor) EnsureReady(ctx context.Context) error {
	if m.Ready() {
		return nil
	}
	if m.probe(ctx) {
		return nil
	}
	return ErrUnavailable
}

// probe pings the store and records the result.
func (m *Monitor) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := m.pool.Ping(pingCtx)

	m.mu.Lock()
	wasReady := m.ready
	firstProbe := m.lastCheck.IsZero()
	m.ready = err == nil
	m.lastCheck = time.Now()
	m.lastErr = err
	m.mu.Unlock()

	if err != nil && (wasReady || firstProbe) {
		m.logger.Warn().Err(err).Msg("Database became unreachable")
	} else if err == nil && !wasReady && !firstProbe {
		m.logger.Info().Msg("Database connectivity restored")
	}

	return err == nil
}
