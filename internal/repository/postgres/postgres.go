package postgres

import (
	"database/sql"

	"drivehub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.VehicleRepository
	repository.BookingRepository
	repository.SaleRepository
	repository.SettingsRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		VehicleRepository:      NewVehicleRepository(db),
		BookingRepository:      NewBookingRepository(db),
		SaleRepository:         NewSaleRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
