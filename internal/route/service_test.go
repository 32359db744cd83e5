package route

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenways/greenways/internal/api/models"
)

// mockMonitor is a controllable store monitor.
type mockMonitor struct {
	err error
}

func (m *mockMonitor) EnsureReady(ctx context.Context) error {
	return m.err
}

func testInput(mode models.Mode) *models.SavedRouteInput {
	return &models.SavedRouteInput{
		Origin:         "Amsterdam, Netherlands",
		Destination:    "Utrecht, Netherlands",
		Distance:       models.TextValue{Text: "46.1 km", Value: 46100},
		Duration:       models.TextValue{Text: "38 mins", Value: 2280},
		Mode:           mode,
		CarbonEmission: 8.85,
	}
}

func TestService_Save(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), &mockMonitor{}, zerolog.Nop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, "usr_abc", testInput(models.ModeDriving))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(saved.ID, "rte_") {
		t.Errorf("route ID = %q, want rte_ prefix", saved.ID)
	}
	if saved.UserID != "usr_abc" {
		t.Errorf("user ID = %q, want usr_abc", saved.UserID)
	}
	if saved.Distance.Value != 46100 {
		t.Errorf("distance value = %d, want 46100", saved.Distance.Value)
	}
	if time.Time(saved.Date).IsZero() {
		t.Error("expected a server-assigned timestamp")
	}
}

func TestService_Save_UserIDIsOpaque(t *testing.T) {
	// userId is an opaque reference, not a key into the users store. A save
	// for an owner the auth layer has never seen still succeeds.
	svc := NewService(NewInMemoryRepository(), &mockMonitor{}, zerolog.Nop())

	saved, err := svc.Save(context.Background(), "usr_never_registered", testInput(models.ModeTransit))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.UserID != "usr_never_registered" {
		t.Errorf("user ID = %q, want usr_never_registered", saved.UserID)
	}
}

func TestService_Save_StoreUnavailable(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), &mockMonitor{err: errors.New("down")}, zerolog.Nop())

	_, err := svc.Save(context.Background(), "usr_abc", testInput(models.ModeDriving))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestService_ListByUser_DateDescending(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, &mockMonitor{}, zerolog.Nop())
	ctx := context.Background()

	// Seed with explicit timestamps to make the ordering unambiguous
	base := time.Now().UTC()
	for i, mode := range []string{"driving", "transit", "walking"} {
		if err := repo.Create(ctx, &SavedRoute{
			ID:        "rte_" + mode,
			UserID:    "usr_abc",
			Origin:    "A",
			Destination: "B",
			Mode:      mode,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	// Another user's route must not appear
	if err := repo.Create(ctx, &SavedRoute{
		ID: "rte_other", UserID: "usr_other", CreatedAt: base,
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	routes, err := svc.ListByUser(ctx, "usr_abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(routes) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(routes))
	}
	wantOrder := []string{"rte_walking", "rte_transit", "rte_driving"}
	for i, want := range wantOrder {
		if routes[i].ID != want {
			t.Errorf("position %d: got %s, want %s (most recent first)", i, routes[i].ID, want)
		}
	}
}

func TestService_ListByUser_Empty(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), &mockMonitor{}, zerolog.Nop())

	routes, err := svc.ListByUser(context.Background(), "usr_nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if routes == nil {
		t.Error("expected empty slice, not nil, so the response encodes as []")
	}
	if len(routes) != 0 {
		t.Errorf("expected no routes, got %d", len(routes))
	}
}

func TestService_SaveListDelete_Sequence(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), &mockMonitor{}, zerolog.Nop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, "usr_abc", testInput(models.ModeTransit))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// The saved route is the most recent listing entry
	routes, err := svc.ListByUser(ctx, "usr_abc")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(routes) == 0 || routes[0].ID != saved.ID {
		t.Fatalf("expected saved route first in listing, got %v", routes)
	}

	// Delete returns the removed route
	deleted, err := svc.Delete(ctx, saved.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != saved.ID {
		t.Errorf("deleted ID = %s, want %s", deleted.ID, saved.ID)
	}

	// Gone from subsequent listings
	routes, err = svc.ListByUser(ctx, "usr_abc")
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(routes) != 0 {
		t.Errorf("expected empty listing after delete, got %d routes", len(routes))
	}

	// Second delete of the same ID is not found
	if _, err := svc.Delete(ctx, saved.ID); !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound on second delete, got %v", err)
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := NewService(NewInMemoryRepository(), &mockMonitor{}, zerolog.Nop())

	_, err := svc.Delete(context.Background(), "rte_missing")
	if !errors.Is(err, ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestService_RecentPairs(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, &mockMonitor{}, zerolog.Nop())
	ctx := context.Background()

	inputs := []struct{ origin, destination string }{
		{"A", "B"},
		{"A", "B"}, // duplicate pair
		{"C", "D"},
	}
	for i, in := range inputs {
		if err := repo.Create(ctx, &SavedRoute{
			ID:          "rte_" + string(rune('a'+i)),
			UserID:      "usr_abc",
			Origin:      in.origin,
			Destination: in.destination,
			CreatedAt:   time.Now().UTC(),
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	pairs, err := svc.RecentPairs(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("expected 2 distinct pairs, got %d", len(pairs))
	}
}

func TestService_RecentPairs_MostRecentFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := NewService(repo, &mockMonitor{}, zerolog.Nop())
	ctx := context.Background()

	// Alphabetical order and save order disagree on purpose.
	saves := []struct{ origin, destination string }{
		{"Zwolle", "Zutphen"},
		{"Amsterdam", "Breda"},
		{"Maastricht", "Nijmegen"},
	}
	for i, in := range saves {
		if err := repo.Create(ctx, &SavedRoute{
			ID:          "rte_" + string(rune('a'+i)),
			UserID:      "usr_abc",
			Origin:      in.origin,
			Destination: in.destination,
			CreatedAt:   time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	pairs, err := svc.RecentPairs(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Pair{
		{Origin: "Maastricht", Destination: "Nijmegen"},
		{Origin: "Amsterdam", Destination: "Breda"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected %d pairs, got %d", len(want), len(pairs))
	}
	for i, p := range pairs {
		if p != want[i] {
			t.Errorf("pair[%d] = %v, want %v", i, p, want[i])
		}
	}
}
