package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/repository"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	s := &domain.Setting{}
	var updatedOn time.Time
	err := r.db.QueryRowContext(ctx, `SELECT key, value, updated_on FROM settings WHERE key = $1`, key).Scan(&s.Key, &s.Value, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		// Unset keys are not an error; callers fall back to defaults.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.UpdatedOn = updatedOn.Format(domain.DateFormat)
	return s, nil
}

func (r *settingsRepository) Set(ctx context.Context, s *domain.Setting) error {
	query := `INSERT INTO settings (key, value, updated_on) VALUES ($1, $2, $3)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_on = EXCLUDED.updated_on`
	_, err := r.db.ExecContext(ctx, query, s.Key, s.Value, time.Now())
	return err
}

func (r *settingsRepository) List(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_on FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var s domain.Setting
		var updatedOn time.Time
		if err := rows.Scan(&s.Key, &s.Value, &updatedOn); err != nil {
			return nil, err
		}
		s.UpdatedOn = updatedOn.Format(domain.DateFormat)
		settings = append(settings, s)
	}
	return settings, rows.Err()
}
