package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// deliveryColumns is the default projection. The otp column is deliberately
// absent; it is readable only through GetOTP.
const deliveryColumns = `
    id, requester_id, driver_id,
    pickup_address, pickup_lat, pickup_lng,
    dropoff_address, dropoff_lat, dropoff_lng,
    cargo_weight_kg, cargo_length_cm, cargo_width_cm, cargo_height_cm,
    cargo_class, cargo_photos,
    vehicle_class, fare, payment_method, payment_status, payment_txn_id,
    distance_m, duration_s, status,
    scheduled_pickup, scheduled_delivery, actual_pickup_time, actual_delivery_time,
    special_instructions, created_at, updated_at`

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row scanner) (*domain.Delivery, error) {
	var d domain.Delivery
	err := row.Scan(
		&d.ID, &d.RequesterID, &d.DriverID,
		&d.Pickup.Address, &d.Pickup.Coordinates.Lat, &d.Pickup.Coordinates.Lng,
		&d.Dropoff.Address, &d.Dropoff.Coordinates.Lat, &d.Dropoff.Coordinates.Lng,
		&d.Cargo.WeightKg, &d.Cargo.LengthCm, &d.Cargo.WidthCm, &d.Cargo.HeightCm,
		&d.Cargo.Class, &d.Cargo.Photos,
		&d.VehicleClass, &d.Fare, &d.Payment.Method, &d.Payment.Status, &d.Payment.TransactionID,
		&d.DistanceMeters, &d.DurationSeconds, &d.Status,
		&d.ScheduledPickup, &d.ScheduledDelivery, &d.ActualPickupTime, &d.ActualDeliveryTime,
		&d.SpecialInstructions, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create - persists a new delivery, OTP included.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO deliveries (
            id, requester_id,
            pickup_address, pickup_lat, pickup_lng,
            dropoff_address, dropoff_lat, dropoff_lng,
            cargo_weight_kg, cargo_length_cm, cargo_width_cm, cargo_height_cm,
            cargo_class, cargo_photos,
            vehicle_class, fare, payment_method, payment_status,
            distance_m, duration_s, otp, status,
            scheduled_pickup, scheduled_delivery, special_instructions
        ) VALUES (
            $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,
            $15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25
        )`,
		d.ID, d.RequesterID,
		d.Pickup.Address, d.Pickup.Coordinates.Lat, d.Pickup.Coordinates.Lng,
		d.Dropoff.Address, d.Dropoff.Coordinates.Lat, d.Dropoff.Coordinates.Lng,
		d.Cargo.WeightKg, d.Cargo.LengthCm, d.Cargo.WidthCm, d.Cargo.HeightCm,
		d.Cargo.Class, d.Cargo.Photos,
		d.VehicleClass, d.Fare, d.Payment.Method, d.Payment.Status,
		d.DistanceMeters, d.DurationSeconds, d.OTP, d.Status,
		d.ScheduledPickup, d.ScheduledDelivery, d.SpecialInstructions,
	)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// Get - returns a delivery by id with the OTP excluded from the projection.
func (r *DeliveryRepo) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery %s: %w", id, err)
	}
	return d, nil
}

// GetOTP - the dedicated access path for the pickup secret.
func (r *DeliveryRepo) GetOTP(ctx context.Context, id string) (string, error) {
	var code string
	err := r.db.QueryRow(ctx, `SELECT otp FROM deliveries WHERE id=$1`, id).Scan(&code)
	if err != nil {
		if IsNotFound(err) {
			return "", apperr.ErrNotFound
		}
		return "", fmt.Errorf("get delivery otp %s: %w", id, err)
	}
	return code, nil
}

// TryAssign resolves the claim race with a single conditional write: the
// delivery moves to driver_assigned only if no driver is bound yet and the
// status still permits claiming. Exactly one of N concurrent callers can
// match the predicate; the rest observe zero affected rows and get a
// deterministic conflict.
func (r *DeliveryRepo) TryAssign(ctx context.Context, deliveryID, driverID string) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET driver_id = $2, status = $3, updated_at = now()
        WHERE id = $1 AND driver_id IS NULL AND status IN ($4, $5)
    `, deliveryID, driverID, string(domain.StatusDriverAssigned),
		string(domain.StatusPending), string(domain.StatusScheduled))
	if err != nil {
		return fmt.Errorf("try assign delivery %s: %w", deliveryID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// The claim itself is already decided; this read only classifies the
	// failure for the caller.
	var current string
	var boundDriver *string
	err = r.db.QueryRow(ctx,
		`SELECT status, driver_id FROM deliveries WHERE id=$1`, deliveryID,
	).Scan(&current, &boundDriver)
	if err != nil {
		if IsNotFound(err) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("classify failed claim %s: %w", deliveryID, err)
	}
	// A cancelled or delivered delivery keeps its driver binding; the status
	// decides first so a late claim on a terminal delivery is not reported as
	// a lost race.
	if domain.DeliveryStatus(current).Terminal() {
		return apperr.ErrInvalidTransition
	}
	if boundDriver != nil {
		return apperr.ErrAlreadyAssigned
	}
	return apperr.ErrInvalidTransition
}

// UpdateStatus applies a lifecycle transition as a conditional write on the
// expected current status. Timestamps the transition produces are written in
// the same statement. Returns false when the predicate did not match, i.e. a
// concurrent writer got there first.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, id string, from, to domain.DeliveryStatus, now time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = $3,
            actual_pickup_time   = CASE WHEN $3 = $4 THEN $6 ELSE actual_pickup_time END,
            actual_delivery_time = CASE WHEN $3 = $5 THEN $6 ELSE actual_delivery_time END,
            updated_at = now()
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to),
		string(domain.StatusPickedUp), string(domain.StatusDelivered), now)
	if err != nil {
		return false, fmt.Errorf("update delivery %s status %s->%s: %w", id, from, to, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListByRequester returns the requester's deliveries, newest first.
func (r *DeliveryRepo) ListByRequester(ctx context.Context, requesterID string, limit int) ([]domain.Delivery, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+deliveryColumns+`
         FROM deliveries
         WHERE requester_id = $1
         ORDER BY created_at DESC
         LIMIT $2`, requesterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries for requester %s: %w", requesterID, err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

// ListAssigned returns deliveries bound to the driver, newest first.
func (r *DeliveryRepo) ListAssigned(ctx context.Context, driverID string) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+deliveryColumns+`
         FROM deliveries
         WHERE driver_id = $1
         ORDER BY created_at DESC`, driverID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries for driver %s: %w", driverID, err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

// ListNearbyPickups returns claimable deliveries whose pickup point lies
// within radiusKm of origin, nearest first. Boundary inclusive. The distance
// expression is the same planar approximation geo.DistanceKm documents.
func (r *DeliveryRepo) ListNearbyPickups(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Delivery, error) {
	if radiusKm <= 0 {
		return []domain.Delivery{}, nil
	}

	q := `SELECT ` + deliveryColumns + `
        FROM deliveries
        WHERE status IN ($3, $4)
          AND sqrt(
                power((pickup_lat - $1) * 111.32, 2) +
                power((pickup_lng - $2) * 111.32 * cos(radians($1)), 2)
              ) <= $5`
	args := []any{origin.Lat, origin.Lng,
		string(domain.StatusPending), string(domain.StatusScheduled), radiusKm}
	if class != nil {
		q += fmt.Sprintf(" AND vehicle_class = $%d", len(args)+1)
		args = append(args, string(*class))
	}
	q += `
        ORDER BY sqrt(
            power((pickup_lat - $1) * 111.32, 2) +
            power((pickup_lng - $2) * 111.32 * cos(radians($1)), 2)
        ) ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list nearby pickups: %w", err)
	}
	defer rows.Close()
	return collectDeliveries(rows)
}

func collectDeliveries(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]domain.Delivery, error) {
	out := make([]domain.Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}
