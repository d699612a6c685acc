package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantryplan/backend-go/internal/domain"
)

type NotificationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	// Create inserts the notification. When a dedupe key is set and a row
	// with the same (user, key) already exists, the insert is skipped and
	// Create reports false.
	Create(ctx context.Context, n *domain.Notification) (bool, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type DeviceRepository interface {
	// Register upserts on (user, token) so re-registering refreshes the
	// platform and enabled flag instead of duplicating the device.
	Register(ctx context.Context, device *domain.UserDevice) error
}
