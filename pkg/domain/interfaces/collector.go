package interfaces

import (
	"context"

	"github.com/relware/mapship/pkg/domain/model"
)

// CollectorClient defines operations against the remote collector service
type CollectorClient interface {
	// UploadSourceMap sends one source map's content for the given release.
	// The returned response may be unparsed (Parsed=false); err covers
	// transport-level failures only.
	UploadSourceMap(ctx context.Context, release string, rec model.SourceMapRecord, content []byte) (*model.CollectorResponse, error)

	// UploadCommits sends the recent-commit list for the given release
	UploadCommits(ctx context.Context, release string, commits []model.CommitRecord) (*model.CollectorResponse, error)
}
