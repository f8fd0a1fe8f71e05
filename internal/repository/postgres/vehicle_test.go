package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository/postgres"
)

func TestVehicleRepository_HasOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	ctx := context.Background()

	period := domain.Interval{Start: date(t, "2026-06-01"), End: date(t, "2026-06-11")}

	t.Run("Overlap", func(t *testing.T) {
		// Closed-range comparison: start_date <= candidate end AND
		// end_date >= candidate start.
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(0), period.End, period.Start).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		overlap, err := repo.HasOverlap(ctx, 1, period, 0)
		assert.NoError(t, err)
		assert.True(t, overlap)
	})

	t.Run("ExcludesOwnBooking", func(t *testing.T) {
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(20), period.End, period.Start).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		overlap, err := repo.HasOverlap(ctx, 1, period, 20)
		assert.NoError(t, err)
		assert.False(t, overlap)
	})
}

func TestVehicleRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	ctx := context.Background()

	t.Run("LoadsReservationLedger", func(t *testing.T) {
		now := date(t, "2026-01-01")
		mock.ExpectQuery("SELECT id, make, model, year").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "make", "model", "year", "offering_type", "daily_rate_cents", "sale_price_cents", "is_available", "created_on", "updated_on"}).
				AddRow(1, "Toyota", "Corolla", 2022, "RENTAL", 3000, 0, true, now, now))
		mock.ExpectQuery("SELECT booking_id, start_date, end_date FROM vehicle_reservations").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "start_date", "end_date"}).
				AddRow(20, date(t, "2026-06-01"), date(t, "2026-06-11")))

		v, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Toyota", v.Make)
		assert.Len(t, v.Reservations, 1)
		assert.Equal(t, int32(20), v.Reservations[0].BookingID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, make, model, year").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})
}

func TestVehicleRepository_RemoveReservation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewVehicleRepository(db)
	ctx := context.Background()

	// Removing an unknown booking id is a no-op, not an error.
	mock.ExpectExec("DELETE FROM vehicle_reservations").
		WithArgs(int32(1), int32(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.RemoveReservation(ctx, 1, 999)
	assert.NoError(t, err)
}

func TestUserRepository_IncrementCommissions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Credit", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents \+`).
			WithArgs(int32(4500), sqlmock.AnyArg(), int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementCommissions(ctx, 9, 4500)
		assert.NoError(t, err)
	})

	t.Run("Reversal", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents \+`).
			WithArgs(int32(-4500), sqlmock.AnyArg(), int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementCommissions(ctx, 9, -4500)
		assert.NoError(t, err)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET total_commissions_cents = total_commissions_cents \+`).
			WithArgs(int32(100), sqlmock.AnyArg(), int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementCommissions(ctx, 404, 100)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
