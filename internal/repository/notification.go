package repository

import (
	"context"
	"fmt"

	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/normalize"
	"github.com/brokeradda/adda-admin/pkg/adda"
)

type notificationRepository struct {
	resource[models.Notification]
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(client *adda.Client) NotificationRepository {
	return &notificationRepository{resource: newResource(client, "/api/notifications", NotificationParams, normalize.Notifications)}
}

func (r *notificationRepository) Send(ctx context.Context, in models.NotificationInput) error {
	if _, err := r.client.Post(ctx, r.path, in); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
