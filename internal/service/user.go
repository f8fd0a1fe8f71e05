package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(ctx context.Context, name, email, phone, password string, role domain.UserRole, commissionRate float64) (*domain.User, error) {
	if role == "" {
		role = domain.UserRoleCustomer
	}
	if role == domain.UserRoleReseller {
		if commissionRate < 0 || commissionRate > 50 {
			return nil, fmt.Errorf("commission rate must be between 0 and 50, got %v", commissionRate)
		}
	} else {
		commissionRate = 0
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:          email,
		PasswordHash:   string(hash),
		Name:           name,
		Phone:          phone,
		Role:           role,
		CommissionRate: commissionRate,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) ListResellers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListResellers(ctx)
}
