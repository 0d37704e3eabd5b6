package model

// SourceMapRecord is one generated source map discovered among the build's
// emitted assets. It lives only for a single upload cycle.
type SourceMapRecord struct {
	Name string // Logical asset name as emitted by the bundler
	Path string // Absolute filesystem path of the map file
}

// ReleaseDescriptor is the persisted record of the last processed release.
// It is written as release.json and overwritten on every build.
type ReleaseDescriptor struct {
	Release string `json:"release"`
	Date    int64  `json:"date"` // Milliseconds since epoch
}

// ReleaseInfoFileName is the fixed descriptor filename inside the
// release-info directory.
const ReleaseInfoFileName = "release.json"
