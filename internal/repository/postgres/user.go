package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, phone, role, commission_rate, total_commissions_cents, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Phone, u.Role, u.CommissionRate, now, now).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, COALESCE(phone, ''), role, commission_rate, total_commissions_cents, created_on, updated_on
	          FROM users WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CommissionRate, &u.TotalCommissionsCents, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format(domain.DateFormat)
	u.UpdatedOn = updatedOn.Format(domain.DateFormat)
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, password_hash, name, COALESCE(phone, ''), role, commission_rate, total_commissions_cents, created_on, updated_on
	          FROM users WHERE email = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Role, &u.CommissionRate, &u.TotalCommissionsCents, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format(domain.DateFormat)
	u.UpdatedOn = updatedOn.Format(domain.DateFormat)
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, name=$2, phone=$3, role=$4, commission_rate=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Phone, u.Role, u.CommissionRate, time.Now(), u.ID)
	return err
}

// IncrementCommissions mutates the accumulator in place so concurrent
// bookings for the same reseller never lose updates.
func (r *userRepository) IncrementCommissions(ctx context.Context, userID int32, deltaCents int32) error {
	query := `UPDATE users SET total_commissions_cents = total_commissions_cents + $1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, deltaCents, time.Now(), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) ListResellers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT id, email, name, commission_rate, total_commissions_cents FROM users WHERE role = $1 ORDER BY total_commissions_cents DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.UserRoleReseller)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.CommissionRate, &u.TotalCommissionsCents); err != nil {
			return nil, err
		}
		u.Role = domain.UserRoleReseller
		users = append(users, u)
	}
	return users, rows.Err()
}
