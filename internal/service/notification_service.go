package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/pantryplan/backend-go/internal/domain"
	"github.com/pantryplan/backend-go/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
	devices       repository.DeviceRepository
	inventory     repository.InventoryRepository
	now           func() time.Time
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	devices repository.DeviceRepository,
	inventory repository.InventoryRepository,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		devices:       devices,
		inventory:     inventory,
		now:           time.Now,
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *NotificationService) RegisterDevice(ctx context.Context, device *domain.UserDevice) (*domain.UserDevice, error) {
	if device.ID == uuid.Nil {
		device.ID = uuid.New()
	}
	if err := s.devices.Register(ctx, device); err != nil {
		return nil, err
	}

	return device, nil
}

// Sweep derives expiry and low-stock notifications from the user's current
// inventory. There is no scheduler: the sweep runs lazily from the dashboard
// read path, and the per-day dedupe key keeps repeated reads from piling up
// duplicates.
func (s *NotificationService) Sweep(ctx context.Context, userID uuid.UUID) error {
	items, err := s.inventory.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	today := s.now().UTC()
	day := today.Format("2006-01-02")

	for i := range items {
		item := &items[i]
		item.Classify(today)

		switch item.ExpirationStatus {
		case domain.ExpirationExpired:
			s.append(ctx, userID, domain.NotifyExpiryWarning,
				fmt.Sprintf("%s has expired", item.IngredientName),
				fmt.Sprintf("%s in your %s expired. Consider removing it.", item.IngredientName, item.Location),
				fmt.Sprintf("expiry:%s:%s", item.ID, day))
		case domain.ExpirationCritical:
			s.append(ctx, userID, domain.NotifyExpiryWarning,
				fmt.Sprintf("%s expires soon", item.IngredientName),
				fmt.Sprintf("%s in your %s expires within %d day(s).", item.IngredientName, item.Location, *item.DaysUntilExpiration),
				fmt.Sprintf("expiry:%s:%s", item.ID, day))
		}

		if item.IsLowStock {
			s.append(ctx, userID, domain.NotifyLowStock,
				fmt.Sprintf("%s is running low", item.IngredientName),
				fmt.Sprintf("Only %.1f %s left. Add it to a shopping list?", item.Quantity, item.Unit),
				fmt.Sprintf("low_stock:%s:%s", item.ID, day))
		}
	}

	return nil
}

// append inserts a deduplicated sweep notification. Failures are logged and
// swallowed: the sweep is best effort and must never fail the read that
// triggered it.
func (s *NotificationService) append(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, title, body, dedupeKey string) {
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		DedupeKey: &dedupeKey,
	}

	if _, err := s.notifications.Create(ctx, notification); err != nil {
		log.Warn().Err(err).Str("type", string(typ)).Msg("notifications: sweep insert failed")
	}
}
