package service

import (
	"context"
	"errors"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type availabilityService struct {
	vehicleRepo repository.VehicleRepository
	cache       VehicleCache
}

func NewAvailabilityService(vehicleRepo repository.VehicleRepository, cache VehicleCache) AvailabilityService {
	return &availabilityService{
		vehicleRepo: vehicleRepo,
		cache:       cache,
	}
}

// Resolve decides whether committing the candidate interval would violate
// the no-double-booking invariant. The read may be served from cache; the
// booking store re-validates against a row-locked ledger at commit time,
// so a stale read can never produce a double booking.
func (s *availabilityService) Resolve(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (*domain.Vehicle, Decision, error) {
	v, ok := s.cachedVehicle(ctx, vehicleID)
	if !ok {
		var err error
		v, err = s.vehicleRepo.GetByID(ctx, vehicleID)
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return nil, DecisionVehicleNotFound, nil
		}
		if err != nil {
			return nil, "", err
		}
		if s.cache != nil {
			s.cache.SetVehicle(ctx, v)
		}
	}

	if !v.Bookable() {
		return v, DecisionVehicleUnavailable, nil
	}
	if v.HasConflict(period, excludeBookingID) {
		return v, DecisionConflict, nil
	}
	return v, DecisionAvailable, nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, vehicleID int32, period domain.Interval, excludeBookingID int32) (Decision, error) {
	_, decision, err := s.Resolve(ctx, vehicleID, period, excludeBookingID)
	return decision, err
}

func (s *availabilityService) cachedVehicle(ctx context.Context, id int32) (*domain.Vehicle, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetVehicle(ctx, id)
}

// decisionErr maps a non-available decision onto the error taxonomy.
func decisionErr(d Decision) error {
	switch d {
	case DecisionConflict:
		return domain.ErrConflict
	case DecisionVehicleUnavailable:
		return domain.ErrVehicleUnavailable
	case DecisionVehicleNotFound:
		return domain.ErrVehicleNotFound
	default:
		return nil
	}
}
