package interfaces

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// NotificationUseCase turns portal activity into broadcasts and map popups
type NotificationUseCase interface {
	HandlePush(ctx context.Context, event *model.PushEvent) error
	HandleProjectSubmitted(ctx context.Context, event *model.ProjectEvent) error
	HandleProjectApproved(ctx context.Context, event *model.ProjectEvent) error
}

// LocationUseCase keeps user locations geocoded
type LocationUseCase interface {
	UpdateUserLocation(ctx context.Context, event *model.UserSettingsEvent) error
}

// AccountUseCase syncs external login state
type AccountUseCase interface {
	UpdateAccessToken(ctx context.Context, event *model.AccessTokenEvent) error
}

// EventUseCase dispatches named portal events
type EventUseCase interface {
	Dispatch(ctx context.Context, name string, payload json.RawMessage) error
}
