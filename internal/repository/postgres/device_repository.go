package postgres

import (
	"context"
	"fmt"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type deviceRepository struct {
	db *DB
}

func NewDeviceRepository(db *DB) repository.DeviceRepository {
	return &deviceRepository{db: db}
}

func (r *deviceRepository) Register(ctx context.Context, device *domain.UserDevice) error {
	query := `
		INSERT INTO user_devices (id, user_id, platform, token, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, token)
		DO UPDATE SET
			platform = EXCLUDED.platform,
			enabled = EXCLUDED.enabled,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		device.ID, device.UserID, device.Platform, device.Token, device.Enabled,
	).Scan(&device.ID, &device.CreatedAt, &device.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}

	return nil
}
