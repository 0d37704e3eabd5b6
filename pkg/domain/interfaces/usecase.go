package interfaces

import (
	"context"

	"github.com/relware/mapship/pkg/domain/model"
)

// ReleaseUseCase defines the post-build release-upload workflow
type ReleaseUseCase interface {
	// ProcessBuild runs the workflow once for a finished build: scan for
	// source maps, upload them with optional commit metadata, write the
	// release descriptor, and clean up. Upload failures are best-effort and
	// never returned; the error is reserved for re-invocation misuse.
	ProcessBuild(ctx context.Context, build *model.BuildResult) error
}
