package resilience_test

import (
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenways/greenways/internal/provider/resilience"
)

func registerClient(registry *resilience.Registry, name string) *resilience.Client {
	cfg := resilience.DefaultClientConfig(name)
	cfg.Registry = registry
	return resilience.NewClient(cfg)
}

func TestRegistry_SelfRegistration(t *testing.T) {
	registry := resilience.NewRegistry()
	registerClient(registry, "googlemaps")

	assert.Equal(t, 1, registry.ProviderCount())

	health := registry.GetHealth("googlemaps")
	require.NotNil(t, health)
	assert.Equal(t, "googlemaps", health.Name)
	assert.Equal(t, gobreaker.StateClosed, health.CircuitState)
	assert.True(t, health.IsHealthy())
	assert.False(t, health.IsDegraded())
	assert.False(t, health.IsUnhealthy())
}

func TestRegistry_Unregister(t *testing.T) {
	registry := resilience.NewRegistry()
	registerClient(registry, "googlemaps")

	registry.Unregister("googlemaps")

	assert.Equal(t, 0, registry.ProviderCount())
	assert.Nil(t, registry.GetHealth("googlemaps"))
}

func TestRegistry_RecordSuccess(t *testing.T) {
	registry := resilience.NewRegistry()
	registerClient(registry, "googlemaps")

	health := registry.GetHealth("googlemaps")
	require.NotNil(t, health)
	assert.Nil(t, health.LastSuccessAt, "no outcomes recorded yet")

	registry.RecordSuccess("googlemaps")

	health = registry.GetHealth("googlemaps")
	require.NotNil(t, health)
	require.NotNil(t, health.LastSuccessAt)
	assert.WithinDuration(t, time.Now(), *health.LastSuccessAt, time.Second)
}

func TestRegistry_RecordFailure(t *testing.T) {
	registry := resilience.NewRegistry()
	registerClient(registry, "googlemaps")

	registry.RecordFailure("googlemaps", assert.AnError)

	health := registry.GetHealth("googlemaps")
	require.NotNil(t, health)
	require.NotNil(t, health.LastFailureAt)
	assert.WithinDuration(t, time.Now(), *health.LastFailureAt, time.Second)
	assert.Equal(t, assert.AnError.Error(), health.LastError)
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := resilience.NewRegistry()
	for _, name := range []string{"googlemaps", "fallback-a", "fallback-b"} {
		registerClient(registry, name)
	}

	healthList := registry.GetAllHealth()
	require.Len(t, healthList, 3)

	names := make(map[string]bool)
	for _, h := range healthList {
		names[h.Name] = true
		assert.Equal(t, gobreaker.StateClosed, h.CircuitState)
	}
	assert.True(t, names["googlemaps"])
	assert.True(t, names["fallback-a"])
	assert.True(t, names["fallback-b"])
}

func TestRegistry_GetProviderNames(t *testing.T) {
	registry := resilience.NewRegistry()
	assert.Empty(t, registry.GetProviderNames())

	registerClient(registry, "googlemaps")
	registerClient(registry, "fallback")

	names := registry.GetProviderNames()
	assert.Len(t, names, 2)
	assert.Contains(t, names, "googlemaps")
	assert.Contains(t, names, "fallback")
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := resilience.NewRegistry()

	assert.Nil(t, registry.GetHealth("unknown"))

	// Recording against unknown names is a no-op, not a panic.
	registry.RecordSuccess("unknown")
	registry.RecordFailure("unknown", assert.AnError)
}

func TestProviderHealth_States(t *testing.T) {
	tests := []struct {
		state       gobreaker.State
		isHealthy   bool
		isDegraded  bool
		isUnhealthy bool
	}{
		{gobreaker.StateClosed, true, false, false},
		{gobreaker.StateHalfOpen, false, true, false},
		{gobreaker.StateOpen, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			h := &resilience.ProviderHealth{CircuitState: tt.state}
			assert.Equal(t, tt.isHealthy, h.IsHealthy())
			assert.Equal(t, tt.isDegraded, h.IsDegraded())
			assert.Equal(t, tt.isUnhealthy, h.IsUnhealthy())
		})
	}
}
