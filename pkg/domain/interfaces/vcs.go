package interfaces

import (
	"context"

	"github.com/relware/mapship/pkg/domain/model"
)

// CommitReader defines operations for reading version-control history
type CommitReader interface {
	// RecentCommits returns up to maxCount commits of the repository at
	// repoPath, most-recent-first. It fails on an invalid repository path.
	RecentCommits(ctx context.Context, repoPath string, maxCount int) ([]model.CommitRecord, error)
}
