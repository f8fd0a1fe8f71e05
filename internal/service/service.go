package service

import (
	"context"
	"time"

	"drivehub-backend/internal/domain"
)

// Decision is the outcome of an availability check. Callers must be able
// to tell "vehicle exists but is not biddable" apart from "the requested
// dates clash with an existing reservation".
type Decision string

const (
	DecisionAvailable          Decision = "AVAILABLE"
	DecisionConflict           Decision = "CONFLICT"
	DecisionVehicleUnavailable Decision = "VEHICLE_UNAVAILABLE"
	DecisionVehicleNotFound    Decision = "VEHICLE_NOT_FOUND"
)

type AvailabilityService interface {
	CheckAvailability(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (Decision, error)
	// Resolve returns the vehicle alongside the decision for callers
	// that need its rate after a successful check.
	Resolve(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (*domain.Vehicle, Decision, error)
}

// CreateBookingInput is the fully-validated payload of a booking request.
type CreateBookingInput struct {
	VehicleID          int32
	UserID             int32
	ResellerID         *int32
	PickupDate         time.Time
	ReturnDate         time.Time
	UpchargePercentage float64
	// Status overrides the default of CONFIRMED when set.
	Status domain.BookingStatus
}

type BookingService interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	UpdateBookingDates(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32, pickup, ret time.Time) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	GetBooking(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListVehicleBookings(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type VehicleService interface {
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error
	DeleteVehicle(ctx context.Context, id int32) error
	ListVehicles(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error)
	SellVehicle(ctx context.Context, vehicleID, buyerID int32, resellerID *int32, priceCents int32, bookingID *int32) (*domain.Sale, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, phone, password string, role domain.UserRole, commissionRate float64) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	ListResellers(ctx context.Context) ([]domain.User, error)
}

type SettingsService interface {
	GetSetting(ctx context.Context, key string) (*domain.Setting, error)
	SetSetting(ctx context.Context, key, value string) (*domain.Setting, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

// Stats is the admin-facing aggregate view.
type Stats struct {
	BookingsByStatus map[domain.BookingStatus]int32 `json:"bookings_by_status"`
	Resellers        []domain.User                  `json:"resellers"`
}

type AdminService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type EmailService interface {
	SendBookingConfirmation(ctx context.Context, email, name, vehicleName, pickup, ret string, totalCents int32) error
	SendBookingDatesChanged(ctx context.Context, email, name, vehicleName, pickup, ret string) error
	SendBookingCancellation(ctx context.Context, email, name, vehicleName string) error
}

// VehicleCache is the read-through cache in front of the vehicle store.
// Implementations are best-effort: a miss just falls back to the store.
type VehicleCache interface {
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, bool)
	SetVehicle(ctx context.Context, v *domain.Vehicle)
	Invalidate(ctx context.Context, id int32)
}

// EventPublisher broadcasts lifecycle events to realtime subscribers.
// Invoked post-commit; delivery is best-effort.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
