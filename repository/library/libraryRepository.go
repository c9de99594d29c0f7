package libraryrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Library struct {
	ID        int64
	Name      string
	Slug      string
	Location  string
	CreatedAt time.Time
}

type Room struct {
	ID                    int64
	LibraryID             int64
	Name                  string
	Capacity              int
	AccessibilityFeatures string
	LastUpdated           time.Time
}

type Booking struct {
	ID          int64
	RoomID      int64
	StartTime   time.Time
	EndTime     time.Time
	Status      string
	LastUpdated time.Time
}

// RoomWithBookings is the nested shape served by the rooms endpoint.
type RoomWithBookings struct {
	Room
	Bookings []Booking
}

type Repo interface {
	List(ctx context.Context) ([]Library, error)
	GetBySlug(ctx context.Context, slug string) (*Library, error)
	// Seed inserts the given libraries if absent; existing rows are untouched.
	Seed(ctx context.Context, libs []Library) error
	// UpsertRoom find-or-creates a room keyed by (library_id, name) and
	// returns its id.
	UpsertRoom(ctx context.Context, libraryID int64, name string, capacity int) (int64, error)
	// UpsertBooking inserts the interval or, when (room_id, start, end)
	// already exists, overwrites its status.
	UpsertBooking(ctx context.Context, roomID int64, start, end time.Time, status string) error
	Rooms(ctx context.Context, libraryID int64) ([]RoomWithBookings, error)
	Bookings(ctx context.Context, libraryID int64) ([]Booking, error)
	BookingsInRange(ctx context.Context, libraryID int64, start, end time.Time) ([]Booking, error)
}

type repo struct{ pool *pgxpool.Pool }

func New(pool *pgxpool.Pool) Repo { return &repo{pool: pool} }

func (r *repo) List(ctx context.Context) ([]Library, error) {
	const q = `SELECT id, name, slug, COALESCE(location, ''), created_at FROM libraries ORDER BY name`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Library
	for rows.Next() {
		var l Library
		if err := rows.Scan(&l.ID, &l.Name, &l.Slug, &l.Location, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repo) GetBySlug(ctx context.Context, slug string) (*Library, error) {
	const q = `SELECT id, name, slug, COALESCE(location, ''), created_at FROM libraries WHERE slug = $1`
	var l Library
	err := r.pool.QueryRow(ctx, q, slug).Scan(&l.ID, &l.Name, &l.Slug, &l.Location, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repo) Seed(ctx context.Context, libs []Library) error {
	const q = `
INSERT INTO libraries (name, slug, location)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO NOTHING`
	for _, l := range libs {
		if _, err := r.pool.Exec(ctx, q, l.Name, l.Slug, l.Location); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) UpsertRoom(ctx context.Context, libraryID int64, name string, capacity int) (int64, error) {
	// The no-op DO UPDATE makes RETURNING yield the id on conflict too,
	// keeping find-or-create a single round trip.
	const q = `
INSERT INTO library_rooms (library_id, name, capacity)
VALUES ($1, $2, $3)
ON CONFLICT (library_id, name)
DO UPDATE SET last_updated = now()
RETURNING id`
	var id int64
	if err := r.pool.QueryRow(ctx, q, libraryID, name, capacity).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) UpsertBooking(ctx context.Context, roomID int64, start, end time.Time, status string) error {
	const q = `
INSERT INTO library_bookings (room_id, start_time, end_time, status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (room_id, start_time, end_time)
DO UPDATE SET status = EXCLUDED.status, last_updated = now()`
	_, err := r.pool.Exec(ctx, q, roomID, start, end, status)
	return err
}

func (r *repo) Rooms(ctx context.Context, libraryID int64) ([]RoomWithBookings, error) {
	const q = `
SELECT id, library_id, name, capacity, COALESCE(accessibility_features, ''), last_updated
FROM library_rooms
WHERE library_id = $1
ORDER BY name`
	rows, err := r.pool.Query(ctx, q, libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoomWithBookings
	for rows.Next() {
		var rm RoomWithBookings
		if err := rows.Scan(&rm.ID, &rm.LibraryID, &rm.Name, &rm.Capacity, &rm.AccessibilityFeatures, &rm.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		bookings, err := r.roomBookings(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Bookings = bookings
	}
	return out, nil
}

func (r *repo) roomBookings(ctx context.Context, roomID int64) ([]Booking, error) {
	const q = `
SELECT id, room_id, start_time, end_time, status, last_updated
FROM library_bookings
WHERE room_id = $1
ORDER BY start_time`
	rows, err := r.pool.Query(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *repo) Bookings(ctx context.Context, libraryID int64) ([]Booking, error) {
	const q = `
SELECT b.id, b.room_id, b.start_time, b.end_time, b.status, b.last_updated
FROM library_bookings b
JOIN library_rooms rm ON rm.id = b.room_id
WHERE rm.library_id = $1
ORDER BY b.start_time`
	rows, err := r.pool.Query(ctx, q, libraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *repo) BookingsInRange(ctx context.Context, libraryID int64, start, end time.Time) ([]Booking, error) {
	const q = `
SELECT b.id, b.room_id, b.start_time, b.end_time, b.status, b.last_updated
FROM library_bookings b
JOIN library_rooms rm ON rm.id = b.room_id
WHERE rm.library_id = $1
  AND b.start_time >= $2
  AND b.end_time <= $3
ORDER BY b.start_time`
	rows, err := r.pool.Query(ctx, q, libraryID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows pgx.Rows) ([]Booking, error) {
	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.StartTime, &b.EndTime, &b.Status, &b.LastUpdated); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
