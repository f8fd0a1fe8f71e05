package service

import (
	"context"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/events"
	"drivehub-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	saleRepo    repository.SaleRepository
	bookingRepo repository.BookingRepository
	cache       VehicleCache
	publisher   EventPublisher
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	saleRepo repository.SaleRepository,
	bookingRepo repository.BookingRepository,
	cache VehicleCache,
	publisher EventPublisher,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		saleRepo:    saleRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

func (s *vehicleService) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if vehicle.OfferingType == "" {
		vehicle.OfferingType = domain.OfferingTypeRental
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

// GetVehicle serves from the read-through cache; a miss populates it.
func (s *vehicleService) GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	if s.cache != nil {
		if v, ok := s.cache.GetVehicle(ctx, id); ok {
			return v, nil
		}
	}
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetVehicle(ctx, v)
	}
	return v, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, vehicle.ID)
	}
	return nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, id int32) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, offeringType string, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	return s.vehicleRepo.List(ctx, offeringType, page, pageSize)
}

// SellVehicle records the sale, takes the vehicle off the market and,
// when the purchase settles an existing rental booking, marks that
// booking completed.
func (s *vehicleService) SellVehicle(ctx context.Context, vehicleID, buyerID int32, resellerID *int32, priceCents int32, bookingID *int32) (*domain.Sale, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Sellable() {
		return nil, domain.ErrVehicleUnavailable
	}
	if priceCents <= 0 {
		priceCents = vehicle.SalePriceCents
	}

	sale := &domain.Sale{
		VehicleID:  vehicleID,
		BuyerID:    buyerID,
		ResellerID: resellerID,
		PriceCents: priceCents,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	if bookingID != nil {
		if err := s.bookingRepo.UpdateStatus(ctx, *bookingID, domain.BookingStatusCompleted); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, vehicleID)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.EventVehicleSold, events.VehicleSoldPayload{
			SaleID:     sale.ID,
			VehicleID:  vehicleID,
			BuyerID:    buyerID,
			PriceCents: priceCents,
		})
	}
	return sale, nil
}
