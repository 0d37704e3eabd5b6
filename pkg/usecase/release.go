package usecase

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/relware/mapship/pkg/domain/interfaces"
	"github.com/relware/mapship/pkg/domain/model"
	"github.com/relware/mapship/pkg/utils/async"
	"github.com/relware/mapship/pkg/utils/lazy"
)

// releaseUseCase runs the post-build release-upload workflow. One instance
// serves exactly one build: the lazily resolved release id and release-info
// directory are memoized per instance.
type releaseUseCase struct {
	cfg       *model.PluginConfig
	collector interfaces.CollectorClient
	commits   interfaces.CommitReader
	reporter  interfaces.Reporter

	releaseID lazy.Cell[string]
	infoDir   lazy.Cell[string]
	started   atomic.Bool
}

// NewRelease creates a ReleaseUseCase for a single build
func NewRelease(
	cfg *model.PluginConfig,
	collector interfaces.CollectorClient,
	commits interfaces.CommitReader,
	reporter interfaces.Reporter,
) (interfaces.ReleaseUseCase, error) {
	if cfg == nil {
		return nil, goerr.New("plugin configuration is required")
	}
	if collector == nil {
		return nil, goerr.New("collector client is required")
	}
	if reporter == nil {
		return nil, goerr.New("reporter is required")
	}

	return &releaseUseCase{
		cfg:       cfg,
		collector: collector,
		commits:   commits,
		reporter:  reporter,
	}, nil
}

// ProcessBuild runs the workflow once. Upload, descriptor, and cleanup
// failures are logged and never cause a non-nil return: the host build must
// not fail over a monitoring side-channel.
func (uc *releaseUseCase) ProcessBuild(ctx context.Context, build *model.BuildResult) error {
	if !uc.started.CompareAndSwap(false, true) {
		return goerr.New("upload workflow already ran for this build")
	}

	logger := ctxlog.From(ctx)

	if uc.cfg.Token.Unveil() == "" {
		logger.Error("integration token is not configured, skipping source map upload")
		return nil
	}

	records := ScanAssets(build.OutputDir, build.Assets)
	if len(records) == 0 {
		logger.Debug("no source maps found, nothing to upload",
			"output_dir", build.OutputDir,
			"asset_count", len(build.Assets),
		)
		return nil
	}

	release := uc.resolveRelease(build)

	logger.Info("uploading source maps",
		"release", release,
		"map_count", len(records),
		"commits_enabled", uc.cfg.Commits != nil,
	)

	start := time.Now()

	tasks := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			uc.uploadSourceMaps(ctx, release, records)
			return nil
		},
	}
	if uc.cfg.Commits != nil {
		tasks = append(tasks, func(ctx context.Context) error {
			return uc.uploadCommits(ctx, release)
		})
	}

	async.Settle(ctx, tasks...)

	uc.reporter.Info("release %s: %d source map(s) processed in %s",
		release, len(records), time.Since(start).Round(time.Millisecond))

	uc.finalize(ctx, release, build, records)

	return nil
}

// resolveRelease returns the explicit release id when configured, otherwise
// the build's content hash. The result is memoized: the fallback is read at
// most once per build and reused for upload and descriptor alike.
func (uc *releaseUseCase) resolveRelease(build *model.BuildResult) string {
	if uc.cfg.Release != "" {
		return uc.cfg.Release
	}
	return uc.releaseID.Resolve(func() string {
		return build.Hash
	})
}

// uploadSourceMaps uploads every record independently and concurrently. A
// single record's failure, at whatever stage, never affects its siblings.
func (uc *releaseUseCase) uploadSourceMaps(ctx context.Context, release string, records []model.SourceMapRecord) {
	tasks := make([]func(ctx context.Context) error, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, func(ctx context.Context) error {
			return uc.uploadOne(ctx, release, rec)
		})
	}
	async.Settle(ctx, tasks...)
}

// uploadOne reads, sends, and reports a single source map. Every outcome is
// terminal here: the returned error is captured by the settle join for the
// log and goes no further.
func (uc *releaseUseCase) uploadOne(ctx context.Context, release string, rec model.SourceMapRecord) error {
	logger := ctxlog.From(ctx)

	content, err := os.ReadFile(rec.Path)
	if err != nil {
		uc.reporter.Failure("failed %s: %s", rec.Name, err)
		return goerr.Wrap(err, "failed to read source map", goerr.V("name", rec.Name), goerr.V("path", rec.Path))
	}

	resp, err := uc.collector.UploadSourceMap(ctx, release, rec, content)
	if err != nil {
		uc.reporter.Failure("failed %s: %s", rec.Name, err)
		return goerr.Wrap(err, "failed to upload source map", goerr.V("name", rec.Name))
	}

	switch {
	case !resp.Parsed:
		logger.Warn("unparsed collector response",
			"name", rec.Name,
			"body", string(resp.Raw),
		)
	case resp.Error:
		uc.reporter.Failure("failed %s: %s", rec.Name, resp.Message)
	default:
		uc.reporter.Success("sent %s", rec.Name)
	}

	return nil
}

// uploadCommits reads the recent history and sends it for the release. Any
// failure abandons the commit task only; source map uploads are unaffected.
func (uc *releaseUseCase) uploadCommits(ctx context.Context, release string) error {
	if uc.commits == nil {
		return goerr.New("commit upload enabled but no commit reader is wired")
	}

	cfg := uc.cfg.Commits

	number := cfg.Number
	if number <= 0 {
		number = model.DefaultCommitNumber
	}

	commits, err := uc.commits.RecentCommits(ctx, cfg.Repo, number)
	if err != nil {
		uc.reporter.Failure("commits not sent: %s", err)
		return goerr.Wrap(err, "failed to read recent commits", goerr.V("repo", cfg.Repo))
	}

	resp, err := uc.collector.UploadCommits(ctx, release, commits)
	if err != nil {
		uc.reporter.Failure("commits not sent: %s", err)
		return goerr.Wrap(err, "failed to upload commits", goerr.V("repo", cfg.Repo))
	}

	switch {
	case !resp.Parsed:
		ctxlog.From(ctx).Warn("unparsed collector response for commits",
			"body", string(resp.Raw),
		)
	case resp.Error:
		uc.reporter.Failure("commits not sent: %s", resp.Message)
	default:
		uc.reporter.Success("sent %d commit(s)", len(commits))
	}

	return nil
}
