package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/logger"
	"drivehub-backend/internal/metrics"
	"drivehub-backend/internal/repository"
	"drivehub-backend/internal/utils"
)

// ErrBookingNotActive rejects date changes on cancelled or completed
// bookings.
var ErrBookingNotActive = errors.New("booking is no longer active")

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	userRepo     repository.UserRepository
	settingsRepo repository.SettingsRepository
	noteRepo     repository.NotificationRepository
	availability AvailabilityService
	locker       *vehicleLocker
	cache        VehicleCache
	publisher    EventPublisher
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	userRepo repository.UserRepository,
	settingsRepo repository.SettingsRepository,
	noteRepo repository.NotificationRepository,
	availability AvailabilityService,
	cache VehicleCache,
	publisher EventPublisher,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		noteRepo:     noteRepo,
		availability: availability,
		locker:       newVehicleLocker(),
		cache:        cache,
		publisher:    publisher,
		emailSvc:     emailSvc,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	period, err := domain.NewInterval(in.PickupDate, in.ReturnDate)
	if err != nil {
		metrics.IncBookingRejected("invalid_range")
		return nil, err
	}

	// Serialize the check-then-commit section per vehicle.
	unlock := s.locker.lock(in.VehicleID)
	defer unlock()

	vehicle, decision, err := s.availability.Resolve(ctx, in.VehicleID, period, 0)
	if err != nil {
		return nil, err
	}
	if decision != DecisionAvailable {
		metrics.IncBookingRejected(string(decision))
		return nil, decisionErr(decision)
	}

	var commissionRate float64
	upchargePct := in.UpchargePercentage
	if in.ResellerID != nil {
		reseller, err := s.userRepo.GetByID(ctx, *in.ResellerID)
		if err != nil {
			return nil, err
		}
		commissionRate = reseller.CommissionRate
		if upchargePct == 0 {
			upchargePct = s.defaultUpchargePercentage(ctx)
		}
	}

	status := in.Status
	if status == "" {
		// New bookings are confirmed immediately; there is no separate
		// approval step.
		status = domain.BookingStatusConfirmed
	}

	booking := &domain.Booking{
		VehicleID:  in.VehicleID,
		UserID:     in.UserID,
		ResellerID: in.ResellerID,
		PickupDate: in.PickupDate,
		ReturnDate: in.ReturnDate,
		Status:     status,
	}
	utils.ApplyQuote(booking, utils.QuoteBooking(period, vehicle.DailyRateCents, commissionRate, upchargePct))

	// Booking row, ledger entry and commission credit commit as one
	// transaction; the store re-checks overlap under a vehicle row lock,
	// so a concurrent writer on another instance loses with ErrConflict.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.IncBookingRejected(string(DecisionConflict))
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.VehicleID)
	}
	metrics.IncBookingCreated(string(booking.Status))
	s.afterBookingChange(ctx, booking, vehicle, events.EventBookingCreated)
	return booking, nil
}

func (s *bookingService) UpdateBookingDates(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32, pickup, ret time.Time) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeBookingActor(booking, actorID, actorRole); err != nil {
		return nil, err
	}

	period, err := domain.NewInterval(pickup, ret)
	if err != nil {
		metrics.IncBookingRejected("invalid_range")
		return nil, err
	}

	unlock := s.locker.lock(booking.VehicleID)
	defer unlock()

	// Re-read under the lock: the snapshot observed before acquisition
	// may have been changed by a concurrent writer.
	booking, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Active() {
		return nil, ErrBookingNotActive
	}

	// The booking's own ledger entry is excluded so re-booking the same
	// or an overlapping-with-itself-only range never self-conflicts.
	vehicle, decision, err := s.availability.Resolve(ctx, booking.VehicleID, period, booking.ID)
	if err != nil {
		return nil, err
	}
	if decision != DecisionAvailable {
		metrics.IncBookingRejected(string(decision))
		return nil, decisionErr(decision)
	}

	// Re-derive the financial snapshot from the stored daily rate and
	// reseller terms; the store moves the reseller accumulator by the
	// difference against the commission it has on record.
	booking.PickupDate = pickup
	booking.ReturnDate = ret
	utils.ApplyQuote(booking, utils.QuoteBooking(period, booking.DailyRateCents, booking.CommissionRate, booking.UpchargePercentage))

	if err := s.bookingRepo.UpdateDates(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.IncBookingRejected(string(DecisionConflict))
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.VehicleID)
	}
	metrics.IncBookingDatesChanged()
	s.afterBookingChange(ctx, booking, vehicle, events.EventBookingUpdated)
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeBookingActor(booking, actorID, actorRole); err != nil {
		return nil, err
	}

	unlock := s.locker.lock(booking.VehicleID)
	defer unlock()

	// Re-read under the lock: the status observed before acquisition may
	// be stale, and cancelling twice must not reverse the commission
	// twice.
	booking, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		return booking, nil
	}

	// Status flip, ledger removal and commission reversal commit as one
	// transaction. The booking row itself is never deleted.
	if err := s.bookingRepo.Cancel(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.VehicleID)
	}
	metrics.IncBookingCancelled()
	s.afterBookingChange(ctx, booking, nil, events.EventBookingCancelled)
	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCompleted); err != nil {
		return nil, err
	}
	booking.Status = domain.BookingStatusCompleted
	if s.cache != nil {
		s.cache.Invalidate(ctx, booking.VehicleID)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actorID int32, actorRole domain.UserRole, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := authorizeBookingActor(booking, actorID, actorRole); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *bookingService) ListVehicleBookings(ctx context.Context, vehicleID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookingRepo.ListByVehicle(ctx, vehicleID, status, page, pageSize)
}

// authorizeBookingActor allows the booking's customer, its reseller, and
// admins.
func authorizeBookingActor(b *domain.Booking, actorID int32, actorRole domain.UserRole) error {
	if actorRole == domain.UserRoleAdmin || b.UserID == actorID {
		return nil
	}
	if b.ResellerID != nil && *b.ResellerID == actorID {
		return nil
	}
	return domain.ErrForbidden
}

// defaultUpchargePercentage reads the site-wide default applied when a
// reseller booking names no explicit markup. Best effort: any read
// failure means no upcharge.
func (s *bookingService) defaultUpchargePercentage(ctx context.Context) float64 {
	if s.settingsRepo == nil {
		return 0
	}
	setting, err := s.settingsRepo.Get(ctx, domain.SettingDefaultUpchargePercentage)
	if err != nil || setting == nil {
		return 0
	}
	pct, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil || pct < 0 {
		return 0
	}
	return pct
}

// afterBookingChange runs the post-commit side channels: persisted
// notification, realtime broadcast, confirmation email. All best-effort.
func (s *bookingService) afterBookingChange(ctx context.Context, b *domain.Booking, vehicle *domain.Vehicle, eventType string) {
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, eventType, events.BookingEventPayload{
			BookingID:  b.ID,
			VehicleID:  b.VehicleID,
			UserID:     b.UserID,
			PickupDate: b.PickupDate.Format(domain.DateFormat),
			ReturnDate: b.ReturnDate.Format(domain.DateFormat),
			Status:     string(b.Status),
		})
	}

	user, err := s.userRepo.GetByID(ctx, b.UserID)
	if err != nil {
		logger.Warn("booking side effects skipped, user lookup failed", "booking_id", b.ID, "error", err)
		return
	}

	vehicleName := fmt.Sprintf("vehicle %d", b.VehicleID)
	if vehicle == nil {
		vehicle, _ = s.vehicleRepo.GetByID(ctx, b.VehicleID)
	}
	if vehicle != nil {
		vehicleName = fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)
	}

	pickup := b.PickupDate.Format(domain.DateFormat)
	ret := b.ReturnDate.Format(domain.DateFormat)

	var title, message string
	switch eventType {
	case events.EventBookingCreated:
		title = "Booking Confirmed"
		message = fmt.Sprintf("Your booking of %s from %s to %s is confirmed", vehicleName, pickup, ret)
		if s.emailSvc != nil {
			_ = s.emailSvc.SendBookingConfirmation(ctx, user.Email, user.Name, vehicleName, pickup, ret, b.TotalCostCents)
		}
	case events.EventBookingUpdated:
		title = "Booking Updated"
		message = fmt.Sprintf("Your booking of %s was moved to %s - %s", vehicleName, pickup, ret)
		if s.emailSvc != nil {
			_ = s.emailSvc.SendBookingDatesChanged(ctx, user.Email, user.Name, vehicleName, pickup, ret)
		}
	case events.EventBookingCancelled:
		title = "Booking Cancelled"
		message = fmt.Sprintf("Your booking of %s was cancelled", vehicleName)
		if s.emailSvc != nil {
			_ = s.emailSvc.SendBookingCancellation(ctx, user.Email, user.Name, vehicleName)
		}
	}

	if s.noteRepo != nil && title != "" {
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:  b.UserID,
			Title:   title,
			Message: message,
			Attributes: map[string]string{
				"type":       eventType,
				"booking_id": fmt.Sprintf("%d", b.ID),
			},
		})
	}
}
