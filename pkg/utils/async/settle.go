package async

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/m-mizutani/ctxlog"
)

// Settle runs every task concurrently and waits until all of them finish,
// regardless of individual outcomes. It never short-circuits on the first
// failure: a task's error or panic is captured, logged, and does not affect
// its siblings.
//
// Behavior:
//   - Each task runs in its own goroutine
//   - Panics are recovered and logged with a stack trace
//   - Errors returned by tasks are logged
//   - Settle returns only after every task has settled
func Settle(ctx context.Context, tasks ...func(ctx context.Context) error) {
	var wg sync.WaitGroup

	for _, task := range tasks {
		wg.Add(1)
		go func(task func(ctx context.Context) error) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					logger := ctxlog.From(ctx)
					logger.Error("panic in settled task",
						"recover", r,
						"stack", string(stack))
				}
			}()

			if err := task(ctx); err != nil {
				logger := ctxlog.From(ctx)
				logger.Error("error in settled task", "error", err)
			}
		}(task)
	}

	wg.Wait()
}
