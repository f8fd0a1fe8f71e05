package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository/postgres"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	assert.NoError(t, err)
	return d
}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	pickup := date(t, "2026-06-01")
	ret := date(t, "2026-06-11")
	resellerID := int32(9)

	t.Run("Success", func(t *testing.T) {
		b := &domain.Booking{
			VehicleID:       1,
			UserID:          7,
			ResellerID:      &resellerID,
			PickupDate:      pickup,
			ReturnDate:      ret,
			DailyRateCents:  3000,
			SubtotalCents:   30000,
			CommissionRate:  15,
			CommissionCents: 4500,
			TotalCostCents:  30000,
			Status:          domain.BookingStatusConfirmed,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM vehicles WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(0), ret, pickup).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(b.VehicleID, b.UserID, b.ResellerID, b.PickupDate, b.ReturnDate, b.DailyRateCents, b.SubtotalCents,
				b.UpchargePercentage, b.UpchargeCents, b.CommissionRate, b.CommissionCents, b.TotalCostCents, b.Status,
				sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectExec("INSERT INTO vehicle_reservations").
			WithArgs(int32(1), int32(42), pickup, ret).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents \+`).
			WithArgs(int32(4500), sqlmock.AnyArg(), resellerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), b.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ConflictDetectedUnderLock", func(t *testing.T) {
		b := &domain.Booking{VehicleID: 1, UserID: 7, PickupDate: pickup, ReturnDate: ret, Status: domain.BookingStatusConfirmed}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM vehicles WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(0), ret, pickup).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("VehicleMissing", func(t *testing.T) {
		b := &domain.Booking{VehicleID: 99, UserID: 7, PickupDate: pickup, ReturnDate: ret}

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM vehicles WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		err := repo.Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_UpdateDates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	resellerID := int32(9)
	pickup := date(t, "2026-06-06")
	ret := date(t, "2026-06-11")

	b := &domain.Booking{
		ID:              20,
		VehicleID:       1,
		UserID:          7,
		ResellerID:      &resellerID,
		PickupDate:      pickup,
		ReturnDate:      ret,
		SubtotalCents:   15000,
		CommissionCents: 2250,
		TotalCostCents:  15000,
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM vehicles WHERE id = \$1 FOR UPDATE`).
		WithArgs(int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Overlap check excludes the booking's own ledger entry.
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(1), int32(20), ret, pickup).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	// The stored commission is read under the row lock; the accumulator
	// moves by the difference against it, 2250 - 4500 here.
	mock.ExpectQuery(`SELECT commission_cents FROM bookings WHERE id = \$1 FOR UPDATE`).
		WithArgs(int32(20)).
		WillReturnRows(sqlmock.NewRows([]string{"commission_cents"}).AddRow(4500))
	mock.ExpectExec("UPDATE bookings SET pickup_date").
		WithArgs(pickup, ret, int32(15000), int32(0), int32(2250), int32(15000), sqlmock.AnyArg(), int32(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE vehicle_reservations SET start_date").
		WithArgs(pickup, ret, int32(20)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents \+`).
		WithArgs(int32(-2250), sqlmock.AnyArg(), resellerID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = repo.UpdateDates(ctx, b)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_Cancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	resellerID := int32(9)
	booking := func() *domain.Booking {
		return &domain.Booking{
			ID:              20,
			VehicleID:       1,
			UserID:          7,
			ResellerID:      &resellerID,
			CommissionCents: 4500,
			Status:          domain.BookingStatusConfirmed,
		}
	}

	t.Run("Success", func(t *testing.T) {
		b := booking()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(20)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM vehicle_reservations").
			WithArgs(int32(20)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents -`).
			WithArgs(int32(4500), sqlmock.AnyArg(), resellerID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Cancel(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadySettledIsNoOp", func(t *testing.T) {
		b := booking()

		// The guarded status flip matches no row when another writer
		// settled the booking first: no ledger delete, no second reversal.
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET status").
			WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(20)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err = repo.Cancel(ctx, b)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
