package repository

import (
	"context"

	"drivehub-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error

	// IncrementCommissions atomically adjusts a reseller's running
	// commission accumulator by deltaCents (negative to reverse).
	IncrementCommissions(ctx context.Context, userID int32, deltaCents int32) error
	ListResellers(ctx context.Context) ([]domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	// GetByID loads the vehicle together with its reservation ledger.
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error)

	// Reservation ledger. Append does not re-validate overlap: the
	// conflict resolver is the gatekeeper on the read path and the
	// booking store re-checks inside its insert transaction.
	AppendReservation(ctx context.Context, vehicleID int32, res domain.Reservation) error
	// RemoveReservation removes all ledger entries for bookingID.
	// Removing an unknown booking id is a no-op.
	RemoveReservation(ctx context.Context, vehicleID, bookingID int32) error
	HasOverlap(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (bool, error)
}

type BookingRepository interface {
	// Create persists the booking, appends the vehicle's ledger entry and
	// credits the reseller commission as one transaction. The overlap
	// check is re-run against a row-locked vehicle inside the
	// transaction; domain.ErrConflict is returned when a concurrent
	// writer won the interval.
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	// UpdateDates commits the full updated booking row, replaces the
	// ledger entry and moves the reseller accumulator by the difference
	// against the commission on record, all in one transaction.
	UpdateDates(ctx context.Context, booking *domain.Booking) error
	// Cancel marks the booking cancelled, removes its ledger entry and
	// reverses the reseller commission in one transaction. The status
	// flip is guarded on the current status, so a booking already
	// settled is a no-op rather than a second reversal. Bookings are
	// never physically deleted.
	Cancel(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByVehicle(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	CountByStatus(ctx context.Context) (map[domain.BookingStatus]int32, error)
}

type SaleRepository interface {
	// Create records the sale and flags the vehicle unavailable in one
	// transaction.
	Create(ctx context.Context, sale *domain.Sale) error
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Sale, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, setting *domain.Setting) error
	List(ctx context.Context) ([]domain.Setting, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
