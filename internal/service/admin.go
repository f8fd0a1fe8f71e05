package service

import (
	"context"

	"drivehub-backend/internal/repository"
)

type adminService struct {
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

func NewAdminService(bookingRepo repository.BookingRepository, userRepo repository.UserRepository) AdminService {
	return &adminService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
	}
}

func (s *adminService) GetStats(ctx context.Context) (*Stats, error) {
	counts, err := s.bookingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	resellers, err := s.userRepo.ListResellers(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		BookingsByStatus: counts,
		Resellers:        resellers,
	}, nil
}
