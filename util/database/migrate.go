package database

import "context"

// Migrate bootstraps the schema. Every statement is idempotent so the service
// can run it unconditionally at startup.
func (d *DB) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS gyms (
			id            BIGSERIAL PRIMARY KEY,
			slug          TEXT NOT NULL UNIQUE,
			regular_hours JSONB NOT NULL DEFAULT '{}'::jsonb,
			special_hours JSONB,
			last_updated  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS gym_capacity_history (
			id           BIGSERIAL PRIMARY KEY,
			gym_id       BIGINT NOT NULL REFERENCES gyms(id) ON DELETE CASCADE,
			zone_name    TEXT NOT NULL,
			capacity     INT NOT NULL,
			percentage   INT NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT uniq_gym_zone_observation UNIQUE (gym_id, zone_name, capacity, percentage, last_updated)
		)`,
		`CREATE TABLE IF NOT EXISTS dining_halls (
			id           BIGSERIAL PRIMARY KEY,
			slug         TEXT NOT NULL UNIQUE,
			menu         JSONB NOT NULL DEFAULT '{}'::jsonb,
			hours_today  JSONB NOT NULL DEFAULT '{}'::jsonb,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS dining_capacity_history (
			id           BIGSERIAL PRIMARY KEY,
			slug         TEXT NOT NULL,
			occupants    INT NOT NULL,
			capacity     INT NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS libraries (
			id         BIGSERIAL PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			slug       TEXT NOT NULL UNIQUE,
			location   TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS library_rooms (
			id                     BIGSERIAL PRIMARY KEY,
			library_id             BIGINT NOT NULL REFERENCES libraries(id) ON DELETE CASCADE,
			name                   TEXT NOT NULL,
			capacity               INT NOT NULL DEFAULT 1,
			accessibility_features TEXT,
			created_at             TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_updated           TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT unique_room_per_library UNIQUE (library_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS library_bookings (
			id           BIGSERIAL PRIMARY KEY,
			room_id      BIGINT NOT NULL REFERENCES library_rooms(id) ON DELETE CASCADE,
			start_time   TIMESTAMPTZ NOT NULL,
			end_time     TIMESTAMPTZ NOT NULL,
			status       TEXT NOT NULL DEFAULT 'available',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
			CONSTRAINT check_valid_timerange CHECK (start_time < end_time),
			CONSTRAINT check_valid_status CHECK (status IN ('available', 'booked')),
			CONSTRAINT unique_time_interval_per_room UNIQUE (room_id, start_time, end_time)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gym_capacity_gym_zone ON gym_capacity_history (gym_id, zone_name, last_updated DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_dining_capacity_slug ON dining_capacity_history (slug, last_updated DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_start ON library_bookings (room_id, start_time)`,
	}
	for _, stmt := range stmts {
		if _, err := d.Pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
