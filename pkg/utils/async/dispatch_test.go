package async_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/localstamp/pkg/utils/async"
)

// logEntry is a flattened slog record
type logEntry struct {
	level slog.Level
	msg   string
	attrs map[string]string
}

// recorder is a slog.Handler that sends every record to a channel
type recorder struct {
	attrs   []slog.Attr
	entries chan logEntry
}

func newRecorder() *recorder {
	return &recorder{entries: make(chan logEntry, 256)}
}

func (h *recorder) Enabled(ctx context.Context, level slog.Level) bool { return true }

func (h *recorder) Handle(ctx context.Context, r slog.Record) error {
	e := logEntry{level: r.Level, msg: r.Message, attrs: map[string]string{}}
	for _, a := range h.attrs {
		e.attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.attrs[a.Key] = a.Value.String()
		return true
	})
	select {
	case h.entries <- e:
	default:
	}
	return nil
}

func (h *recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recorder{
		attrs:   append(append([]slog.Attr{}, h.attrs...), attrs...),
		entries: h.entries,
	}
}

func (h *recorder) WithGroup(name string) slog.Handler { return h }

// next waits for the next record with msg
func (h *recorder) next(t *testing.T, msg string) logEntry {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case e := <-h.entries:
			if e.msg == msg {
				return e
			}
		case <-timeout:
			t.Fatalf("no %q log within timeout", msg)
		}
	}
}

func TestDispatch(t *testing.T) {
	t.Run("handler logger carries the task", func(t *testing.T) {
		rec := newRecorder()
		ctx := ctxlog.With(context.Background(), slog.New(rec))

		async.Dispatch(ctx, "offset-refresh", func(ctx context.Context) error {
			ctxlog.From(ctx).Info("offset refreshed", "offset", "+09:00")
			return nil
		})

		e := rec.next(t, "offset refreshed")
		gt.Equal(t, e.attrs["task"], "offset-refresh")
		gt.Equal(t, e.attrs["offset"], "+09:00")
	})

	t.Run("handler error is logged with the task", func(t *testing.T) {
		rec := newRecorder()
		ctx := ctxlog.With(context.Background(), slog.New(rec))

		async.Dispatch(ctx, "offset-refresh", func(ctx context.Context) error {
			return errors.New("failed to refresh offset")
		})

		e := rec.next(t, "error in async handler")
		gt.Equal(t, e.level, slog.LevelError)
		gt.Equal(t, e.attrs["task"], "offset-refresh")
		gt.String(t, e.attrs["error"]).Contains("failed to refresh offset")
	})

	t.Run("panic is recovered with stack", func(t *testing.T) {
		rec := newRecorder()
		ctx := ctxlog.With(context.Background(), slog.New(rec))

		async.Dispatch(ctx, "offset-refresh", func(ctx context.Context) error {
			panic("detector exploded")
		})

		e := rec.next(t, "panic in async handler")
		gt.Equal(t, e.attrs["task"], "offset-refresh")
		gt.Equal(t, e.attrs["recover"], "detector exploded")
		gt.String(t, e.attrs["stack"]).Contains("dispatch_test.go")
	})

	t.Run("handler outlives caller cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		wg.Add(1)

		async.Dispatch(ctx, "detached", func(newCtx context.Context) error {
			defer wg.Done()
			cancel()
			gt.NoError(t, newCtx.Err())
			return nil
		})

		wg.Wait()
	})
}
