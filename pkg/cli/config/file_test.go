package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/relware/mapship/pkg/cli/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapship.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfigFile(t, `
endpoint = "https://collector.internal/api/v1/upload"
token = "file-token"
release = "v2.0.0"
remove-source-maps = false

[commits]
repo = "../app"
number = 10
`)

	f, err := config.LoadFile(path)
	gt.NoError(t, err)

	gt.Value(t, f.Endpoint).Equal("https://collector.internal/api/v1/upload")
	gt.Value(t, f.Token).Equal("file-token")
	gt.Value(t, f.Release).Equal("v2.0.0")
	gt.Value(t, f.RemoveSourceMaps).NotNil()
	gt.Value(t, *f.RemoveSourceMaps).Equal(false)
	gt.Value(t, f.Commits).NotNil()
	gt.Value(t, f.Commits.Repo).Equal("../app")
	gt.Number(t, f.Commits.Number).Equal(10)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)

	path := writeConfigFile(t, `endpoint = [not toml`)
	_, err = config.LoadFile(path)
	gt.Error(t, err)
}

func TestFile_Apply(t *testing.T) {
	f := &config.File{
		Endpoint: "https://collector.internal/api/v1/upload",
		Token:    "file-token",
		Release:  "v2.0.0",
		Commits:  &config.FileCommits{Repo: "../app", Number: 10},
	}

	collectorCfg := config.Collector{
		Endpoint: "https://flag.example/upload",
		Token:    "",
	}
	releaseCfg := config.Release{
		CommitsRepo:      ".",
		CommitsNumber:    5,
		RemoveSourceMaps: true,
	}

	// "endpoint" was set on the command line, everything else was not
	isSet := func(name string) bool { return name == "endpoint" }

	f.Apply(isSet, &collectorCfg, &releaseCfg)

	// Explicit flag wins
	gt.Value(t, collectorCfg.Endpoint).Equal("https://flag.example/upload")

	// Unset values are filled from the file
	gt.Value(t, collectorCfg.Token).Equal("file-token")
	gt.Value(t, releaseCfg.Release).Equal("v2.0.0")
	gt.Value(t, releaseCfg.CommitsRepo).Equal("../app")
	gt.Number(t, releaseCfg.CommitsNumber).Equal(10)
}

func TestRelease_Commits(t *testing.T) {
	cfg := config.Release{CommitsRepo: ".", CommitsNumber: 5}

	commits := cfg.Commits()
	gt.Value(t, commits).NotNil()
	gt.Value(t, commits.Repo).Equal(".")
	gt.Number(t, commits.Number).Equal(5)

	cfg.NoCommits = true
	gt.Value(t, cfg.Commits()).Nil()
}
