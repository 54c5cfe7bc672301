package async

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/ctxlog"
)

// Every runs handler on each tick of interval until stop is called or ctx
// is cancelled. Each run goes through Dispatch, so a failing or panicking
// handler is logged and the loop continues. stop waits for the ticker
// goroutine to exit but not for a handler that is still running.
func Every(ctx context.Context, task string, interval time.Duration, handler func(ctx context.Context) error) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				ctxlog.From(ctx).Debug("periodic task triggered", "task", task, "interval", interval.String())
				Dispatch(ctx, task, handler)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
