package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine under a context that keeps the
// logger of ctx, tagged with task, but not its cancellation. Errors and
// panics from handler are logged.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	logger := ctxlog.From(ctx).With("task", task)
	newCtx := ctxlog.With(context.Background(), logger)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger.Error("error in async handler", "error", err)
		}
	}()
}
