package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (make, model, year, offering_type, daily_rate_cents, sale_price_cents, is_available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, v.Make, v.Model, v.Year, v.OfferingType, v.DailyRateCents, v.SalePriceCents, v.IsAvailable, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, make, model, year, offering_type, daily_rate_cents, sale_price_cents, is_available, created_on, updated_on
	          FROM vehicles WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.OfferingType, &v.DailyRateCents, &v.SalePriceCents, &v.IsAvailable, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrVehicleNotFound
	}
	if err != nil {
		return nil, err
	}
	v.CreatedOn = createdOn.Format(domain.DateFormat)
	v.UpdatedOn = updatedOn.Format(domain.DateFormat)

	reservations, err := r.loadReservations(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Reservations = reservations
	return v, nil
}

func (r *vehicleRepository) loadReservations(ctx context.Context, vehicleID int32) ([]domain.Reservation, error) {
	query := `SELECT booking_id, start_date, end_date FROM vehicle_reservations WHERE vehicle_id = $1 ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.BookingID, &res.Period.Start, &res.Period.End); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, offering_type=$4, daily_rate_cents=$5, sale_price_cents=$6, is_available=$7, updated_on=$8 WHERE id=$9`
	res, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.Year, v.OfferingType, v.DailyRateCents, v.SalePriceCents, v.IsAvailable, time.Now(), v.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *vehicleRepository) List(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, make, model, year, offering_type, daily_rate_cents, sale_price_cents, is_available, created_on, updated_on FROM vehicles`
	args := []interface{}{}
	if offeringType != "" {
		query += ` WHERE offering_type = $1`
		args = append(args, offeringType)
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	if offeringType != "" {
		query += ` ORDER BY id LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY id LIMIT $1 OFFSET $2`
	}
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var createdOn, updatedOn time.Time
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.OfferingType, &v.DailyRateCents, &v.SalePriceCents, &v.IsAvailable, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		v.CreatedOn = createdOn.Format(domain.DateFormat)
		v.UpdatedOn = updatedOn.Format(domain.DateFormat)
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}

func (r *vehicleRepository) AppendReservation(ctx context.Context, vehicleID int32, res domain.Reservation) error {
	query := `INSERT INTO vehicle_reservations (vehicle_id, booking_id, start_date, end_date) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, vehicleID, res.BookingID, res.Period.Start, res.Period.End)
	return err
}

func (r *vehicleRepository) RemoveReservation(ctx context.Context, vehicleID, bookingID int32) error {
	// Idempotent: zero rows removed is not an error.
	_, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_reservations WHERE vehicle_id = $1 AND booking_id = $2`, vehicleID, bookingID)
	return err
}

func (r *vehicleRepository) HasOverlap(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (bool, error) {
	// Closed-range overlap: touching endpoints conflict.
	query := `SELECT EXISTS (
	            SELECT 1 FROM vehicle_reservations
	            WHERE vehicle_id = $1 AND booking_id <> $2 AND start_date <= $3 AND end_date >= $4
	          )`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, vehicleID, excludeBookingID, period.End, period.Start).Scan(&exists)
	return exists, err
}
