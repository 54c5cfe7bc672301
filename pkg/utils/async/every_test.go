package async_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/localstamp/pkg/utils/async"
)

func TestEvery(t *testing.T) {
	t.Run("keeps ticking after errors and panics", func(t *testing.T) {
		rec := newRecorder()
		ctx := ctxlog.With(context.Background(), slog.New(rec))

		var calls atomic.Int32
		refreshed := make(chan struct{}, 1)

		// shaped like clock refresh: detection error, then panic, then success
		stop := async.Every(ctx, "offset-refresh", 5*time.Millisecond, func(ctx context.Context) error {
			switch calls.Add(1) {
			case 1:
				return errors.New("failed to refresh offset")
			case 2:
				panic("detector exploded")
			default:
				select {
				case refreshed <- struct{}{}:
				default:
				}
				return nil
			}
		})
		defer stop()

		select {
		case <-refreshed:
		case <-time.After(time.Second):
			t.Fatal("refresh did not succeed after failures")
		}

		failures := map[string]logEntry{}
		timeout := time.After(time.Second)
		for len(failures) < 2 {
			select {
			case e := <-rec.entries:
				if e.level == slog.LevelError {
					failures[e.msg] = e
				}
			case <-timeout:
				t.Fatalf("missing failure logs, got %v", failures)
			}
		}
		gt.Equal(t, failures["error in async handler"].attrs["task"], "offset-refresh")
		gt.Equal(t, failures["panic in async handler"].attrs["task"], "offset-refresh")
		gt.Number(t, calls.Load()).Greater(int32(2))
	})

	t.Run("stop is idempotent and halts the loop", func(t *testing.T) {
		var calls atomic.Int32
		stop := async.Every(context.Background(), "tick", 5*time.Millisecond, func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})

		time.Sleep(30 * time.Millisecond)
		stop()
		stop()

		// a handler dispatched just before stop may still finish
		time.Sleep(10 * time.Millisecond)
		after := calls.Load()
		time.Sleep(30 * time.Millisecond)
		gt.Equal(t, calls.Load(), after)
	})

	t.Run("stops on context cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var count atomic.Int32

		stop := async.Every(ctx, "idle", time.Hour, func(ctx context.Context) error {
			count.Add(1)
			return nil
		})
		cancel()
		stop()

		gt.Equal(t, count.Load(), int32(0))
	})
}
