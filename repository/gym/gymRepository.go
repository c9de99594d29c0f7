package gymrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Gym struct {
	ID           int64
	Slug         string
	RegularHours map[string]string
	SpecialHours map[string]string
	LastUpdated  time.Time
}

// ZoneObservation is one capacity reading for a single gym zone.
type ZoneObservation struct {
	ID          int64
	GymID       int64
	ZoneName    string
	Capacity    int
	Percentage  int
	LastUpdated time.Time
}

type Repo interface {
	GetBySlug(ctx context.Context, slug string) (*Gym, error)
	// UpsertHours replaces a gym's schedule wholesale, creating the row on
	// first sight of the slug.
	UpsertHours(ctx context.Context, slug string, regular, special map[string]string) error
	// InsertCapacity appends one zone observation. Re-submitting an identical
	// (zone, capacity, percentage, timestamp) tuple is a no-op.
	InsertCapacity(ctx context.Context, slug, zoneName string, capacity, percentage int, observedAt time.Time) error
	// LatestCapacity returns the most recent observation per zone.
	LatestCapacity(ctx context.Context, slug string) ([]ZoneObservation, error)
	PruneHistory(ctx context.Context, olderThan time.Time) (int64, error)
}

type repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &repo{pool: pool} }

func (r *repo) GetBySlug(ctx context.Context, slug string) (*Gym, error) {
	const q = `
SELECT id, slug, regular_hours, COALESCE(special_hours, '{}'::jsonb), last_updated
FROM gyms
WHERE slug = $1`
	var g Gym
	err := r.pool.QueryRow(ctx, q, slug).Scan(&g.ID, &g.Slug, &g.RegularHours, &g.SpecialHours, &g.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repo) UpsertHours(ctx context.Context, slug string, regular, special map[string]string) error {
	const q = `
INSERT INTO gyms (slug, regular_hours, special_hours, last_updated)
VALUES ($1, $2, $3, now())
ON CONFLICT (slug)
DO UPDATE SET regular_hours = EXCLUDED.regular_hours,
              special_hours = EXCLUDED.special_hours,
              last_updated  = now()`
	_, err := r.pool.Exec(ctx, q, slug, regular, special)
	return err
}

func (r *repo) InsertCapacity(ctx context.Context, slug, zoneName string, capacity, percentage int, observedAt time.Time) error {
	const q = `
INSERT INTO gym_capacity_history (gym_id, zone_name, capacity, percentage, last_updated)
SELECT id, $2, $3, $4, $5 FROM gyms WHERE slug = $1
ON CONFLICT ON CONSTRAINT uniq_gym_zone_observation DO NOTHING`
	_, err := r.pool.Exec(ctx, q, slug, zoneName, capacity, percentage, observedAt)
	return err
}

func (r *repo) LatestCapacity(ctx context.Context, slug string) ([]ZoneObservation, error) {
	const q = `
SELECT DISTINCT ON (h.zone_name)
       h.id, h.gym_id, h.zone_name, h.capacity, h.percentage, h.last_updated
FROM gym_capacity_history h
JOIN gyms g ON g.id = h.gym_id
WHERE g.slug = $1
ORDER BY h.zone_name, h.last_updated DESC`
	rows, err := r.pool.Query(ctx, q, slug)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ZoneObservation
	for rows.Next() {
		var o ZoneObservation
		if err := rows.Scan(&o.ID, &o.GymID, &o.ZoneName, &o.Capacity, &o.Percentage, &o.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repo) PruneHistory(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gym_capacity_history WHERE last_updated < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
