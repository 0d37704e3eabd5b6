package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/relware/mapship/pkg/cli/config"
	"github.com/relware/mapship/pkg/controller/hook"
	"github.com/relware/mapship/pkg/domain/model"
	"github.com/relware/mapship/pkg/domain/types"
	"github.com/relware/mapship/pkg/infra/collector"
	"github.com/relware/mapship/pkg/infra/vcs"
	"github.com/relware/mapship/pkg/usecase"
	"github.com/relware/mapship/pkg/utils/report"
)

// buildHashLength is how many hex digits of the digest identify a build,
// matching the length bundlers use for their content hashes.
const buildHashLength = 20

func cmdUpload() *cli.Command {
	var (
		collectorCfg config.Collector
		releaseCfg   config.Release
		configPath   string
	)

	flags := append(collectorCfg.Flags(), releaseCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "config",
		Usage:       "Path to a mapship.toml project configuration",
		Destination: &configPath,
		Sources:     cli.EnvVars("MAPSHIP_CONFIG"),
	})

	return &cli.Command{
		Name:      "upload",
		Aliases:   []string{"u"},
		Usage:     "Upload a finished build's source maps to the collector",
		ArgsUsage: "<output-dir>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			outputDir := c.Args().First()
			if outputDir == "" {
				return goerr.New("output directory argument is required")
			}

			if configPath != "" {
				file, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				file.Apply(c.IsSet, &collectorCfg, &releaseCfg)
			}

			build, err := readBuild(outputDir)
			if err != nil {
				return err
			}

			logger.Info("scanned bundler output",
				"output_dir", build.OutputDir,
				"asset_count", len(build.Assets),
				"build_hash", build.Hash,
			)

			client, err := collector.NewClient(collectorCfg.Endpoint, types.Secret(collectorCfg.Token), collectorCfg.Timeout)
			if err != nil {
				return err
			}

			pluginCfg := &model.PluginConfig{
				Endpoint:         collectorCfg.Endpoint,
				Token:            types.Secret(collectorCfg.Token),
				Release:          releaseCfg.Release,
				ReleaseInfoDir:   releaseCfg.ReleaseInfoDir,
				WriteReleaseInfo: !releaseCfg.NoReleaseInfo,
				RemoveSourceMaps: releaseCfg.RemoveSourceMaps,
				Commits:          releaseCfg.Commits(),
				Timeout:          collectorCfg.Timeout,
			}

			releaseUC, err := usecase.NewRelease(pluginCfg, client, vcs.NewReader(), report.NewConsole(os.Stdout))
			if err != nil {
				return goerr.Wrap(err, "failed to create upload workflow")
			}

			// The CLI acts as the bundler host: it delivers the finished
			// build to the after-emit hook and always continues.
			hook.New(releaseUC).Run(ctx, build)

			return nil
		},
	}
}

// readBuild synthesizes a BuildResult from a bundler output directory: the
// emitted asset names are the files under the directory (slash-separated,
// lexical order) and the build hash is derived from their contents.
func readBuild(outputDir string) (*model.BuildResult, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve output directory", goerr.V("dir", outputDir))
	}

	var assets []string
	digest := sha256.New()

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		assets = append(assets, name)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.WriteString(digest, name); err != nil {
			return err
		}
		if _, err := io.Copy(digest, f); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read bundler output", goerr.V("dir", abs))
	}

	return &model.BuildResult{
		OutputDir: abs,
		Hash:      hex.EncodeToString(digest.Sum(nil))[:buildHashLength],
		Assets:    assets,
	}, nil
}
