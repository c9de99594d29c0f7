package diningrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DiningHall struct {
	ID          int64
	Slug        string
	Menu        map[string][]string
	HoursToday  map[string]string
	LastUpdated time.Time
}

// Occupancy is one headcount reading for a dining location.
type Occupancy struct {
	ID          int64
	Slug        string
	Occupants   int
	Capacity    int
	LastUpdated time.Time
}

type Repo interface {
	GetBySlug(ctx context.Context, slug string) (*DiningHall, error)
	// UpsertHall overwrites the hall's menu and hours in place, creating the
	// row on first scrape.
	UpsertHall(ctx context.Context, slug string, menu map[string][]string, hoursToday map[string]string) error
	InsertOccupancy(ctx context.Context, slug string, occupants, capacity int) error
	LatestOccupancy(ctx context.Context, slug string) (*Occupancy, error)
	PruneHistory(ctx context.Context, olderThan time.Time) (int64, error)
}

type repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &repo{pool: pool} }

func (r *repo) GetBySlug(ctx context.Context, slug string) (*DiningHall, error) {
	const q = `
SELECT id, slug, menu, hours_today, last_updated
FROM dining_halls
WHERE slug = $1`
	var h DiningHall
	err := r.pool.QueryRow(ctx, q, slug).Scan(&h.ID, &h.Slug, &h.Menu, &h.HoursToday, &h.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *repo) UpsertHall(ctx context.Context, slug string, menu map[string][]string, hoursToday map[string]string) error {
	const q = `
INSERT INTO dining_halls (slug, menu, hours_today, last_updated)
VALUES ($1, $2, $3, now())
ON CONFLICT (slug)
DO UPDATE SET menu         = EXCLUDED.menu,
              hours_today  = EXCLUDED.hours_today,
              last_updated = now()`
	_, err := r.pool.Exec(ctx, q, slug, menu, hoursToday)
	return err
}

func (r *repo) InsertOccupancy(ctx context.Context, slug string, occupants, capacity int) error {
	const q = `
INSERT INTO dining_capacity_history (slug, occupants, capacity)
VALUES ($1, $2, $3)`
	_, err := r.pool.Exec(ctx, q, slug, occupants, capacity)
	return err
}

func (r *repo) LatestOccupancy(ctx context.Context, slug string) (*Occupancy, error) {
	const q = `
SELECT id, slug, occupants, capacity, last_updated
FROM dining_capacity_history
WHERE slug = $1
ORDER BY last_updated DESC
LIMIT 1`
	var o Occupancy
	err := r.pool.QueryRow(ctx, q, slug).Scan(&o.ID, &o.Slug, &o.Occupants, &o.Capacity, &o.LastUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) PruneHistory(ctx context.Context, olderThan time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM dining_capacity_history WHERE last_updated < $1`, olderThan)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
