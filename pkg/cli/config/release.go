package config

import (
	"github.com/urfave/cli/v3"

	"github.com/relware/mapship/pkg/domain/model"
)

// Release holds release and finalization configuration
type Release struct {
	Release          string
	ReleaseInfoDir   string
	NoReleaseInfo    bool
	RemoveSourceMaps bool
	CommitsRepo      string
	CommitsNumber    int
	NoCommits        bool
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "release",
			Usage:       "Explicit release id (default: the build's content hash)",
			Destination: &c.Release,
			Sources:     cli.EnvVars("MAPSHIP_RELEASE"),
		},
		&cli.StringFlag{
			Name:        "release-info-dir",
			Usage:       "Directory to write release.json into (default: the build output directory)",
			Destination: &c.ReleaseInfoDir,
			Sources:     cli.EnvVars("MAPSHIP_RELEASE_INFO_DIR"),
		},
		&cli.BoolFlag{
			Name:        "no-release-info",
			Usage:       "Do not write release.json",
			Destination: &c.NoReleaseInfo,
			Sources:     cli.EnvVars("MAPSHIP_NO_RELEASE_INFO"),
		},
		&cli.BoolFlag{
			Name:        "remove-source-maps",
			Usage:       "Delete uploaded source map files from disk",
			Value:       true,
			Destination: &c.RemoveSourceMaps,
			Sources:     cli.EnvVars("MAPSHIP_REMOVE_SOURCE_MAPS"),
		},
		&cli.StringFlag{
			Name:        "commits-repo",
			Usage:       "Repository path to read recent commits from",
			Value:       ".",
			Destination: &c.CommitsRepo,
			Sources:     cli.EnvVars("MAPSHIP_COMMITS_REPO"),
		},
		&cli.IntFlag{
			Name:        "commits-number",
			Usage:       "Maximum number of recent commits to attach",
			Value:       model.DefaultCommitNumber,
			Destination: &c.CommitsNumber,
			Sources:     cli.EnvVars("MAPSHIP_COMMITS_NUMBER"),
		},
		&cli.BoolFlag{
			Name:        "no-commits",
			Usage:       "Do not attach recent commits to the release",
			Destination: &c.NoCommits,
			Sources:     cli.EnvVars("MAPSHIP_NO_COMMITS"),
		},
	}
}

// Commits returns the commit-inclusion settings, nil when disabled
func (c *Release) Commits() *model.CommitsConfig {
	if c.NoCommits {
		return nil
	}
	return &model.CommitsConfig{
		Repo:   c.CommitsRepo,
		Number: c.CommitsNumber,
	}
}
