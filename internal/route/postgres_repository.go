package route

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL saved-route repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create persists a new saved route.
func (r *PostgresRepository) Create(ctx context.Context, route *SavedRoute) error {
	query := `
		INSERT INTO saved_routes (
			id, user_id, origin, destination,
			distance_text, distance_value, duration_text, duration_value,
			mode, carbon_emission, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		route.ID,
		route.UserID,
		route.Origin,
		route.Destination,
		route.DistanceText,
		route.DistanceValue,
		route.DurationText,
		route.DurationValue,
		route.Mode,
		route.CarbonEmission,
		route.CreatedAt,
	)
	return err
}

// ListByUser returns all routes saved by a user, most recent first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]SavedRoute, error) {
	query := `
		SELECT
			id, user_id, origin, destination,
			distance_text, distance_value, duration_text, duration_value,
			mode, carbon_emission, created_at
		FROM saved_routes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]SavedRoute, 0)
	for rows.Next() {
		var route SavedRoute
		if err := rows.Scan(
			&route.ID,
			&route.UserID,
			&route.Origin,
			&route.Destination,
			&route.DistanceText,
			&route.DistanceValue,
			&route.DurationText,
			&route.DurationValue,
			&route.Mode,
			&route.CarbonEmission,
			&route.CreatedAt,
		); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

// Delete removes a saved route and returns it.
func (r *PostgresRepository) Delete(ctx context.Context, routeID string) (*SavedRoute, error) {
	query := `
		DELETE FROM saved_routes
		WHERE id = $1
		RETURNING
			id, user_id, origin, destination,
			distance_text, distance_value, duration_text, duration_value,
			mode, carbon_emission, created_at
	`

	var route SavedRoute
	err := r.pool.QueryRow(ctx, query, routeID).Scan(
		&route.ID,
		&route.UserID,
		&route.Origin,
		&route.Destination,
		&route.DistanceText,
		&route.DistanceValue,
		&route.DurationText,
		&route.DurationValue,
		&route.Mode,
		&route.CarbonEmission,
		&route.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	return &route, nil
}

// ListRecentPairs returns distinct origin/destination pairs from
// recently saved routes.
func (r *PostgresRepository) ListRecentPairs(ctx context.Context, limit int) ([]Pair, error) {
	// DISTINCT ON needs its own ordering, so recency ordering happens in
	// the outer query over each pair's latest save.
	query := `
		SELECT origin, destination
		FROM (
			SELECT DISTINCT ON (origin, destination) origin, destination, created_at
			FROM saved_routes
			ORDER BY origin, destination, created_at DESC
		) latest
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := make([]Pair, 0, limit)
	for rows.Next() {
		var pair Pair
		if err := rows.Scan(&pair.Origin, &pair.Destination); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
