package broadcast

import (
	"context"
	"errors"

	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/contribmap/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Fanout delivers each notification to every notifier. All notifiers are
// tried; their errors are joined.
type Fanout []interfaces.Notifier

var _ interfaces.Notifier = Fanout(nil)

// Notify implements interfaces.Notifier
func (f Fanout) Notify(ctx context.Context, kind types.EventKind, payload any) error {
	if len(f) == 0 {
		ctxlog.From(ctx).Debug("No notifier configured, broadcast skipped", "kind", kind)
		return nil
	}

	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, kind, payload); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return goerr.Wrap(errors.Join(errs...), "broadcast failed",
			goerr.V("kind", kind),
			goerr.V("failed", len(errs)),
		)
	}
	return nil
}

type background struct {
	notifier interfaces.Notifier
}

// Background returns a notifier that runs n in a separate goroutine and
// returns immediately. Failures are logged and reported, not returned.
func Background(n interfaces.Notifier) interfaces.Notifier {
	return &background{notifier: n}
}

func (b *background) Notify(ctx context.Context, kind types.EventKind, payload any) error {
	async.Dispatch(ctx, func(ctx context.Context) error {
		return b.notifier.Notify(ctx, kind, payload)
	})
	return nil
}
