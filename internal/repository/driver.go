package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargo-dispatch-service/internal/apperr"
	"cargo-dispatch-service/internal/domain"
)

// DriverRepo represents driver repository.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

const driverColumns = `
    id, name, phone, status,
    vehicle_class, max_weight_kg, max_volume_m3, registration, vehicle_model,
    lat, lng`

func scanDriver(row scanner) (*domain.Driver, error) {
	var (
		d        domain.Driver
		lat, lng *float64
	)
	err := row.Scan(
		&d.ID, &d.Name, &d.Phone, &d.Status,
		&d.Vehicle.Class, &d.Vehicle.MaxWeightKg, &d.Vehicle.MaxVolumeM3,
		&d.Vehicle.Registration, &d.Vehicle.Model,
		&lat, &lng,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		d.Location = &domain.Coordinate{Lat: *lat, Lng: *lng}
	}
	return &d, nil
}

// Create - creates a new driver.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO drivers (id, name, phone, status, vehicle_class,
                             max_weight_kg, max_volume_m3, registration, vehicle_model)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `, d.ID, d.Name, d.Phone, d.Status,
		d.Vehicle.Class, d.Vehicle.MaxWeightKg, d.Vehicle.MaxVolumeM3,
		d.Vehicle.Registration, d.Vehicle.Model)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

// Get - returns driver by its ID.
func (r *DriverRepo) Get(ctx context.Context, id string) (*domain.Driver, error) {
	d, err := scanDriver(r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM drivers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %s: %w", id, err)
	}
	return d, nil
}

// UpdateLocation stores the driver's last reported position and returns true
// if a row was affected.
func (r *DriverRepo) UpdateLocation(ctx context.Context, id string, c domain.Coordinate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers SET lat = $2, lng = $3, updated_at = now() WHERE id = $1
    `, id, c.Lat, c.Lng)
	if err != nil {
		return false, fmt.Errorf("update driver location %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateStatus flips the driver's availability and returns true if a row was
// affected.
func (r *DriverRepo) UpdateStatus(ctx context.Context, id string, status domain.DriverStatus) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers SET status = $2, updated_at = now() WHERE id = $1
    `, id, string(status))
	if err != nil {
		return false, fmt.Errorf("update driver status %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdatePartial applies a partial update to a driver and returns true if a
// row was affected.
func (r *DriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE drivers
        SET
            name       = COALESCE($2, name),
            phone      = COALESCE($3, phone),
            status     = COALESCE($4, status),
            updated_at = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Phone, (*string)(u.Status))
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update driver %s: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// FindNearbyAvailable returns available drivers whose last known location
// lies within radiusKm of origin, nearest first. Drivers that never reported
// a location are excluded, not treated as distance zero. Boundary inclusive.
func (r *DriverRepo) FindNearbyAvailable(ctx context.Context, origin domain.Coordinate, radiusKm float64, class *domain.VehicleClass) ([]domain.Driver, error) {
	if radiusKm <= 0 {
		return []domain.Driver{}, nil
	}

	q := `SELECT ` + driverColumns + `,
            sqrt(
                power((lat - $1) * 111.32, 2) +
                power((lng - $2) * 111.32 * cos(radians($1)), 2)
            ) AS distance_km
        FROM drivers
        WHERE status = $3
          AND lat IS NOT NULL AND lng IS NOT NULL
          AND sqrt(
                power((lat - $1) * 111.32, 2) +
                power((lng - $2) * 111.32 * cos(radians($1)), 2)
              ) <= $4`
	args := []any{origin.Lat, origin.Lng, string(domain.DriverAvailable), radiusKm}
	if class != nil {
		q += fmt.Sprintf(" AND vehicle_class = $%d", len(args)+1)
		args = append(args, string(*class))
	}
	q += ` ORDER BY distance_km ASC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find nearby drivers: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Driver, 0)
	for rows.Next() {
		var (
			d        domain.Driver
			lat, lng *float64
		)
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Phone, &d.Status,
			&d.Vehicle.Class, &d.Vehicle.MaxWeightKg, &d.Vehicle.MaxVolumeM3,
			&d.Vehicle.Registration, &d.Vehicle.Model,
			&lat, &lng, &d.DistanceKm,
		); err != nil {
			return nil, err
		}
		if lat != nil && lng != nil {
			d.Location = &domain.Coordinate{Lat: *lat, Lng: *lng}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
