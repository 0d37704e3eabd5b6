package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// File is the optional project configuration (mapship.toml). Values from the
// file fill in whatever the command line left unset; explicit flags and
// environment variables always win.
type File struct {
	Endpoint         string       `toml:"endpoint"`
	Token            string       `toml:"token"`
	Release          string       `toml:"release"`
	ReleaseInfoDir   string       `toml:"release-info-dir"`
	NoReleaseInfo    *bool        `toml:"no-release-info"`
	RemoveSourceMaps *bool        `toml:"remove-source-maps"`
	Commits          *FileCommits `toml:"commits"`
}

// FileCommits mirrors the [commits] table
type FileCommits struct {
	Repo   string `toml:"repo"`
	Number int    `toml:"number"`
}

// LoadFile reads and decodes a TOML configuration file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &f, nil
}

// IsSet reports whether the named flag was set explicitly. It is the merge
// predicate used when applying file values.
type IsSet func(name string) bool

// Apply overlays the file onto the flag-bound configs for every value the
// command line did not set.
func (f *File) Apply(isSet IsSet, collector *Collector, release *Release) {
	if f.Endpoint != "" && !isSet("endpoint") {
		collector.Endpoint = f.Endpoint
	}
	if f.Token != "" && !isSet("token") {
		collector.Token = f.Token
	}
	if f.Release != "" && !isSet("release") {
		release.Release = f.Release
	}
	if f.ReleaseInfoDir != "" && !isSet("release-info-dir") {
		release.ReleaseInfoDir = f.ReleaseInfoDir
	}
	if f.NoReleaseInfo != nil && !isSet("no-release-info") {
		release.NoReleaseInfo = *f.NoReleaseInfo
	}
	if f.RemoveSourceMaps != nil && !isSet("remove-source-maps") {
		release.RemoveSourceMaps = *f.RemoveSourceMaps
	}
	if f.Commits != nil {
		if f.Commits.Repo != "" && !isSet("commits-repo") {
			release.CommitsRepo = f.Commits.Repo
		}
		if f.Commits.Number > 0 && !isSet("commits-number") {
			release.CommitsNumber = f.Commits.Number
		}
	}
}
