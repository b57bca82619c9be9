package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/contribmap/pkg/utils/async"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
)

// logSink collects error logs written from the dispatched goroutine
type logSink struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	written chan struct{}
}

func newLogSink() *logSink {
	return &logSink{written: make(chan struct{}, 1)}
}

func (s *logSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.buf.Write(p)
	select {
	case s.written <- struct{}{}:
	default:
	}
	return n, err
}

func (s *logSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *logSink) ctx() context.Context {
	logger := slog.New(slog.NewTextHandler(s, &slog.HandlerOptions{Level: slog.LevelError}))
	return ctxlog.With(context.Background(), logger)
}

func (s *logSink) wait(t *testing.T) string {
	t.Helper()
	select {
	case <-s.written:
		return s.String()
	case <-time.After(time.Second):
		t.Fatal("nothing was logged within timeout")
		return ""
	}
}

func TestDispatch_RunsDetached(t *testing.T) {
	ctx, cancel := context.WithCancel(ctxlog.With(context.Background(), slog.Default()))

	done := make(chan error, 1)
	async.Dispatch(ctx, func(newCtx context.Context) error {
		cancel()
		gt.NotNil(t, ctxlog.From(newCtx))
		done <- newCtx.Err()
		return nil
	})

	select {
	case err := <-done:
		gt.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler did not run within timeout")
	}
}

func TestDispatch_LogsHandlerError(t *testing.T) {
	sink := newLogSink()

	async.Dispatch(sink.ctx(), func(ctx context.Context) error {
		return errors.New("broadcast rejected")
	})

	gt.String(t, sink.wait(t)).Contains("error in async handler")
}

func TestDispatch_RecoversPanic(t *testing.T) {
	sink := newLogSink()

	async.Dispatch(sink.ctx(), func(ctx context.Context) error {
		panic("slack client exploded")
	})

	out := sink.wait(t)
	gt.String(t, out).Contains("panic in async handler")
	gt.String(t, out).Contains("slack client exploded")
	gt.String(t, out).Contains("dispatch_test.go")
}

func TestDispatch_ClonesSentryHub(t *testing.T) {
	hub := sentry.NewHub(nil, sentry.NewScope())
	ctx := sentry.SetHubOnContext(context.Background(), hub)

	got := make(chan *sentry.Hub, 1)
	async.Dispatch(ctx, func(ctx context.Context) error {
		got <- sentry.GetHubFromContext(ctx)
		return nil
	})

	select {
	case h := <-got:
		gt.NotNil(t, h)
		gt.True(t, h != hub)
	case <-time.After(time.Second):
		t.Fatal("handler did not run within timeout")
	}
}
