package model

import (
	"time"

	"github.com/relware/mapship/pkg/domain/types"
)

// CommitsConfig controls the commit-upload task. A nil CommitsConfig on
// PluginConfig disables commit upload entirely.
type CommitsConfig struct {
	Repo   string // Path of the repository to read commits from
	Number int    // Maximum number of recent commits to attach
}

// PluginConfig is the resolved configuration of one upload workflow.
// It is immutable after construction: the workflow never writes back into it.
type PluginConfig struct {
	Endpoint string       // Collector upload URL
	Token    types.Secret // Integration credential sent as a bearer token

	// Release is the explicit release id. Empty means "derive from the
	// build's content hash".
	Release string

	// ReleaseInfoDir is where release.json is written. Empty means the
	// build's output directory. WriteReleaseInfo=false suppresses the file.
	ReleaseInfoDir   string
	WriteReleaseInfo bool

	// RemoveSourceMaps deletes every scanned map file after the upload
	// phase settles, regardless of per-file upload outcome.
	RemoveSourceMaps bool

	Commits *CommitsConfig
	Timeout time.Duration // Per-request timeout for collector calls
}

// DefaultCommitNumber is how many recent commits are attached when commit
// upload is enabled without an explicit count.
const DefaultCommitNumber = 5

// DefaultTimeout bounds each collector request.
const DefaultTimeout = 10 * time.Second
