package postgres

import (
	"context"
	"database/sql"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, s *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO sales (vehicle_id, buyer_id, reseller_id, price_cents, created_on) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, s.VehicleID, s.BuyerID, s.ResellerID, s.PriceCents, now).Scan(&s.ID); err != nil {
		return err
	}

	// A sold vehicle leaves the booking pool permanently.
	res, err := tx.ExecContext(ctx, `UPDATE vehicles SET is_available=false, updated_on=$1 WHERE id=$2`, now, s.VehicleID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrVehicleNotFound
	}

	return tx.Commit()
}

func (r *saleRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Sale, error) {
	query := `SELECT id, vehicle_id, buyer_id, reseller_id, price_cents, created_on FROM sales WHERE vehicle_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		var createdOn time.Time
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.BuyerID, &s.ResellerID, &s.PriceCents, &createdOn); err != nil {
			return nil, err
		}
		s.CreatedOn = createdOn.Format(domain.DateFormat)
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
