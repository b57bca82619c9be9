package interfaces

import (
	"context"

	"github.com/m-mizutani/contribmap/pkg/domain/model"
)

// PopupSink accepts map annotations for display
type PopupSink interface {
	AddPopup(ctx context.Context, popup *model.PopupMessage) error
}
