package usecase

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Portal event names
const (
	EventUserXUPUpdated    = "user_xup_updated"
	EventUserSettingsSaved = "postuserset"
	EventProjectSubmitted  = "e107projects_user_project_submitted"
	EventProjectApproved   = "e107projects_user_project_approved"
	EventWebhookPush       = "e107projects_webhook_push"
)

var (
	// ErrUnknownEvent is returned for event names without a handler
	ErrUnknownEvent = goerr.New("unknown event")

	// ErrInvalidPayload is returned when the event body cannot be decoded
	ErrInvalidPayload = goerr.New("invalid event payload")
)

type eventHandler func(ctx context.Context, raw json.RawMessage) error

type eventUseCase struct {
	handlers map[string]eventHandler
}

// NewEvents registers a handler per portal event
func NewEvents(
	notification interfaces.NotificationUseCase,
	location interfaces.LocationUseCase,
	account interfaces.AccountUseCase,
) *eventUseCase {
	return &eventUseCase{
		handlers: map[string]eventHandler{
			EventUserXUPUpdated:    handle(account.UpdateAccessToken),
			EventUserSettingsSaved: handle(location.UpdateUserLocation),
			EventProjectSubmitted:  handle(notification.HandleProjectSubmitted),
			EventProjectApproved:   handle(notification.HandleProjectApproved),
			EventWebhookPush:       handle(notification.HandlePush),
		},
	}
}

func handle[T any](fn func(ctx context.Context, event *T) error) eventHandler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var event T
		if err := json.Unmarshal(raw, &event); err != nil {
			return goerr.Wrap(ErrInvalidPayload, err.Error())
		}
		return fn(ctx, &event)
	}
}

// Names returns the registered event names in sorted order
func (uc *eventUseCase) Names() []string {
	names := make([]string, 0, len(uc.handlers))
	for name := range uc.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch decodes payload for the named event and runs its handler
func (uc *eventUseCase) Dispatch(ctx context.Context, name string, payload json.RawMessage) error {
	h, ok := uc.handlers[name]
	if !ok {
		return goerr.Wrap(ErrUnknownEvent, "no handler registered", goerr.V("event", name))
	}

	ctxlog.From(ctx).Info("Dispatching portal event", "event", name, "size", len(payload))

	if err := h(ctx, payload); err != nil {
		return goerr.Wrap(err, "event handler failed", goerr.V("event", name))
	}
	return nil
}

var _ interfaces.EventUseCase = (*eventUseCase)(nil)
