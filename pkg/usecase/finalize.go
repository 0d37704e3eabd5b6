package usecase

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/ctxlog"

	"github.com/relware/mapship/pkg/domain/model"
)

// finalize runs after the upload tasks settled: it writes the release
// descriptor and removes the uploaded map files. The two steps are guarded
// by their own flags and are independent of each other and of upload
// outcomes.
func (uc *releaseUseCase) finalize(ctx context.Context, release string, build *model.BuildResult, records []model.SourceMapRecord) {
	if uc.cfg.WriteReleaseInfo {
		uc.writeDescriptor(ctx, release, build)
	}
	if uc.cfg.RemoveSourceMaps {
		uc.removeSourceMaps(ctx, records)
	}
}

// writeDescriptor overwrites <dir>/release.json with the release id and the
// current instant. The directory is the configured one, falling back to the
// build's output directory, resolved at most once per build.
func (uc *releaseUseCase) writeDescriptor(ctx context.Context, release string, build *model.BuildResult) {
	logger := ctxlog.From(ctx)

	dir := uc.infoDir.Resolve(func() string {
		if uc.cfg.ReleaseInfoDir != "" {
			return uc.cfg.ReleaseInfoDir
		}
		return build.OutputDir
	})

	descriptor := model.ReleaseDescriptor{
		Release: release,
		Date:    time.Now().UnixMilli(),
	}

	encoded, err := json.Marshal(descriptor)
	if err != nil {
		logger.Error("failed to encode release descriptor", "error", err, "release", release)
		return
	}

	path := filepath.Join(dir, model.ReleaseInfoFileName)
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		logger.Error("failed to write release descriptor", "error", err, "path", path)
		return
	}

	uc.reporter.Info("wrote %s (release %s)", path, release)
}

// removeSourceMaps deletes every scanned map file. Deletion is unconditional
// on upload outcome: callers who want to retry failed uploads must disable
// removal.
func (uc *releaseUseCase) removeSourceMaps(ctx context.Context, records []model.SourceMapRecord) {
	logger := ctxlog.From(ctx)

	for _, rec := range records {
		if err := os.Remove(rec.Path); err != nil {
			logger.Error("failed to remove source map", "error", err, "path", rec.Path)
			continue
		}
		logger.Debug("removed source map", "path", rec.Path)
	}
}
