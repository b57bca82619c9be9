package interfaces

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/types"
)

// Notifier broadcasts portal activity. payload is the event as received
// (*model.PushEvent or *model.ProjectEvent).
type Notifier interface {
	Notify(ctx context.Context, kind types.EventKind, payload any) error
}
