package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, vehicle_id, user_id, reseller_id, pickup_date, return_date, daily_rate_cents, subtotal_cents,
	upcharge_percentage, upcharge_cents, commission_rate, commission_cents, total_cost_cents, status, created_on, updated_on`

// lockVehicle serializes writers on one vehicle and re-checks overlap
// inside the transaction, closing the window between the availability
// read and the reservation commit.
func lockVehicle(ctx context.Context, tx *sql.Tx, vehicleID int32, period domain.Interval, excludeBookingID int32) error {
	var id int32
	err := tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, vehicleID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrVehicleNotFound
	}
	if err != nil {
		return err
	}

	var conflict bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS (
		SELECT 1 FROM vehicle_reservations
		WHERE vehicle_id = $1 AND booking_id <> $2 AND start_date <= $3 AND end_date >= $4
	)`, vehicleID, excludeBookingID, period.End, period.Start).Scan(&conflict)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrConflict
	}
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockVehicle(ctx, tx, b.VehicleID, b.Period(), 0); err != nil {
		return err
	}

	now := time.Now()
	query := `INSERT INTO bookings (vehicle_id, user_id, reseller_id, pickup_date, return_date, daily_rate_cents, subtotal_cents,
	            upcharge_percentage, upcharge_cents, commission_rate, commission_cents, total_cost_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		b.VehicleID, b.UserID, b.ResellerID, b.PickupDate, b.ReturnDate, b.DailyRateCents, b.SubtotalCents,
		b.UpchargePercentage, b.UpchargeCents, b.CommissionRate, b.CommissionCents, b.TotalCostCents, b.Status, now, now,
	).Scan(&b.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO vehicle_reservations (vehicle_id, booking_id, start_date, end_date) VALUES ($1, $2, $3, $4)`,
		b.VehicleID, b.ID, b.PickupDate, b.ReturnDate)
	if err != nil {
		return err
	}

	if b.ResellerID != nil && b.CommissionCents != 0 {
		_, err = tx.ExecContext(ctx, `UPDATE users SET total_commissions_cents = total_commissions_cents + $1, updated_on=$2 WHERE id=$3`,
			b.CommissionCents, now, *b.ResellerID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.VehicleID, &b.UserID, &b.ResellerID, &b.PickupDate, &b.ReturnDate, &b.DailyRateCents, &b.SubtotalCents,
		&b.UpchargePercentage, &b.UpchargeCents, &b.CommissionRate, &b.CommissionCents, &b.TotalCostCents, &b.Status, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	b.CreatedOn = createdOn.Format(domain.DateFormat)
	b.UpdatedOn = updatedOn.Format(domain.DateFormat)
	return b, nil
}

func (r *bookingRepository) UpdateDates(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := lockVehicle(ctx, tx, b.VehicleID, b.Period(), b.ID); err != nil {
		return err
	}

	// Lock the booking row and read the commission actually on record, so
	// the reseller delta is computed against the committed value rather
	// than whatever the caller last read.
	var oldCommissionCents int32
	err = tx.QueryRowContext(ctx, `SELECT commission_cents FROM bookings WHERE id = $1 FOR UPDATE`, b.ID).Scan(&oldCommissionCents)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrBookingNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	// The whole updated document is committed in one statement so a
	// conflict can never leave a half-applied update behind.
	query := `UPDATE bookings SET pickup_date=$1, return_date=$2, subtotal_cents=$3, upcharge_cents=$4,
	            commission_cents=$5, total_cost_cents=$6, updated_on=$7 WHERE id=$8`
	_, err = tx.ExecContext(ctx, query,
		b.PickupDate, b.ReturnDate, b.SubtotalCents, b.UpchargeCents, b.CommissionCents, b.TotalCostCents, now, b.ID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `UPDATE vehicle_reservations SET start_date=$1, end_date=$2 WHERE booking_id=$3`,
		b.PickupDate, b.ReturnDate, b.ID)
	if err != nil {
		return err
	}

	if b.ResellerID != nil {
		if delta := b.CommissionCents - oldCommissionCents; delta != 0 {
			_, err = tx.ExecContext(ctx, `UPDATE users SET total_commissions_cents = total_commissions_cents + $1, updated_on=$2 WHERE id=$3`,
				delta, now, *b.ResellerID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) Cancel(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	// Only an active booking may flip to cancelled. The guard keeps a
	// concurrent writer on another instance from reversing the commission
	// a second time.
	res, err := tx.ExecContext(ctx, `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3 AND status IN ('PENDING', 'CONFIRMED')`,
		domain.BookingStatusCancelled, now, b.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Already settled by whoever won the flip; the ledger entry and
		// the reversal were theirs to do.
		return nil
	}

	// Physical removal: a cancelled booking never blocks the vehicle.
	_, err = tx.ExecContext(ctx, `DELETE FROM vehicle_reservations WHERE booking_id = $1`, b.ID)
	if err != nil {
		return err
	}

	if b.ResellerID != nil && b.CommissionCents != 0 {
		_, err = tx.ExecContext(ctx, `UPDATE users SET total_commissions_cents = total_commissions_cents - $1, updated_on=$2 WHERE id=$3`,
			b.CommissionCents, now, *b.ResellerID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	b.Status = domain.BookingStatusCancelled
	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "user_id", userID, status, page, pageSize)
}

func (r *bookingRepository) ListByVehicle(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "vehicle_id", vehicleID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, column string, id int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s = $1`, bookingColumns, column)

	args := []interface{}{id}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var createdOn, updatedOn time.Time
		if err := rows.Scan(
			&b.ID, &b.VehicleID, &b.UserID, &b.ResellerID, &b.PickupDate, &b.ReturnDate, &b.DailyRateCents, &b.SubtotalCents,
			&b.UpchargePercentage, &b.UpchargeCents, &b.CommissionRate, &b.CommissionCents, &b.TotalCostCents, &b.Status, &createdOn, &updatedOn); err != nil {
			return nil, 0, err
		}
		b.CreatedOn = createdOn.Format(domain.DateFormat)
		b.UpdatedOn = updatedOn.Format(domain.DateFormat)
		bookings = append(bookings, b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[domain.BookingStatus]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.BookingStatus]int32)
	for rows.Next() {
		var status domain.BookingStatus
		var n int32
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
