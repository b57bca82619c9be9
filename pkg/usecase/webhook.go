package usecase

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

type webhookUseCase struct {
	notification interfaces.NotificationUseCase
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(notification interfaces.NotificationUseCase) *webhookUseCase {
	return &webhookUseCase{notification: notification}
}

// ProcessEvent processes a webhook event. Only pushes produce notifications,
// other deliveries are logged and acknowledged.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"repository", event.Repository,
		"sender", event.Sender,
		"supported", event.IsSupportedEvent(),
	)

	if !event.IsSupportedEvent() {
		if event.Type != model.EventTypePing {
			logger.Warn("Unsupported event received", "type", event.Type)
		}
		return nil
	}

	return uc.notification.HandlePush(ctx, event.Push)
}
