package hook

import (
	"context"

	"github.com/m-mizutani/ctxlog"

	"github.com/relware/mapship/pkg/domain/interfaces"
	"github.com/relware/mapship/pkg/domain/model"
)

// AfterEmit is the callback a bundler adapter invokes once per build, after
// every asset has been emitted. It returns only when the workflow settled;
// it never reports failure, so the host build always continues.
type AfterEmit func(ctx context.Context, build *model.BuildResult)

// Host abstracts a bundler's hook mechanism. An adapter for a concrete
// bundler implements this and calls the registered callback from its own
// post-emit notification.
type Host interface {
	OnAfterEmit(fn AfterEmit)
}

// Hook bridges a bundler host to the release-upload workflow
type Hook struct {
	releaseUC interfaces.ReleaseUseCase
}

// New creates a Hook around the given workflow
func New(releaseUC interfaces.ReleaseUseCase) *Hook {
	return &Hook{releaseUC: releaseUC}
}

// Register attaches the workflow to the host's after-emit notification
func (h *Hook) Register(host Host) {
	host.OnAfterEmit(h.Run)
}

// Run executes the workflow for one finished build. Errors are logged only.
func (h *Hook) Run(ctx context.Context, build *model.BuildResult) {
	if err := h.releaseUC.ProcessBuild(ctx, build); err != nil {
		ctxlog.From(ctx).Error("release upload workflow failed", "error", err)
	}
}
