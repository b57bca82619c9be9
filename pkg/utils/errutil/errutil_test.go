package errutil_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/contribmap/pkg/utils/errutil"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
)

func TestHandle_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	errutil.Handle(ctx, "something failed", errors.New("boom"))

	gt.String(t, buf.String()).Contains("something failed")
	gt.String(t, buf.String()).Contains("boom")
}

func TestHandle_NilError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := ctxlog.With(context.Background(), logger)

	errutil.Handle(ctx, "nothing", nil)
	gt.Value(t, buf.String()).Equal("")
}

func TestHandle_ReportsToSentry(t *testing.T) {
	var captured []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, hint *sentry.EventHint) *sentry.Event {
			captured = append(captured, event)
			return nil
		},
	})
	gt.NoError(t, err)

	hub := sentry.NewHub(client, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	errutil.Handle(ctx, "report me", errors.New("sentry boom"))

	gt.Number(t, len(captured)).Equal(1)
	gt.Value(t, captured[0].Tags["message"]).Equal("report me")
}

func TestInitSentry_EmptyDSN(t *testing.T) {
	gt.NoError(t, errutil.InitSentry("", "test"))
}
