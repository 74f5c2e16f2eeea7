package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the store layout. Applied by dbtool and by the integration test
// suite; production migrations run the same statements.
const Schema = `
CREATE TABLE IF NOT EXISTS drivers (
    id               TEXT PRIMARY KEY,
    name             TEXT NOT NULL,
    phone            TEXT NOT NULL,
    status           TEXT NOT NULL DEFAULT 'offline',
    vehicle_class    TEXT NOT NULL,
    max_weight_kg    DOUBLE PRECISION NOT NULL,
    max_volume_m3    DOUBLE PRECISION NOT NULL,
    registration     TEXT NOT NULL UNIQUE,
    vehicle_model    TEXT NOT NULL,
    lat              DOUBLE PRECISION,
    lng              DOUBLE PRECISION,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS drivers_status_loc_idx ON drivers (status, lat, lng);

CREATE TABLE IF NOT EXISTS deliveries (
    id                   TEXT PRIMARY KEY,
    requester_id         TEXT NOT NULL,
    driver_id            TEXT REFERENCES drivers(id),
    pickup_address       TEXT NOT NULL,
    pickup_lat           DOUBLE PRECISION NOT NULL,
    pickup_lng           DOUBLE PRECISION NOT NULL,
    dropoff_address      TEXT NOT NULL,
    dropoff_lat          DOUBLE PRECISION NOT NULL,
    dropoff_lng          DOUBLE PRECISION NOT NULL,
    cargo_weight_kg      DOUBLE PRECISION NOT NULL,
    cargo_length_cm      DOUBLE PRECISION NOT NULL DEFAULT 0,
    cargo_width_cm       DOUBLE PRECISION NOT NULL DEFAULT 0,
    cargo_height_cm      DOUBLE PRECISION NOT NULL DEFAULT 0,
    cargo_class          TEXT NOT NULL,
    cargo_photos         TEXT[] NOT NULL DEFAULT '{}',
    vehicle_class        TEXT NOT NULL,
    fare                 BIGINT NOT NULL,
    payment_method       TEXT NOT NULL,
    payment_status       TEXT NOT NULL DEFAULT 'pending',
    payment_txn_id       TEXT NOT NULL DEFAULT '',
    distance_m           DOUBLE PRECISION NOT NULL,
    duration_s           DOUBLE PRECISION NOT NULL,
    otp                  TEXT NOT NULL,
    status               TEXT NOT NULL DEFAULT 'pending',
    scheduled_pickup     TIMESTAMPTZ,
    scheduled_delivery   TIMESTAMPTZ,
    actual_pickup_time   TIMESTAMPTZ,
    actual_delivery_time TIMESTAMPTZ,
    special_instructions TEXT NOT NULL DEFAULT '',
    created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS deliveries_requester_idx ON deliveries (requester_id, created_at DESC);
CREATE INDEX IF NOT EXISTS deliveries_driver_idx ON deliveries (driver_id);
CREATE INDEX IF NOT EXISTS deliveries_claimable_idx ON deliveries (status, pickup_lat, pickup_lng);
`

// ApplySchema creates tables and indexes if they do not exist.
func ApplySchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
