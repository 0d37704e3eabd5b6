package model

// BuildResult represents the outcome of one bundler run, delivered to the
// after-emit hook. Assets keeps the bundler's emission order so the scan
// output is stable for a fixed input.
type BuildResult struct {
	OutputDir string   // Directory the bundler emitted into
	Hash      string   // Content-hash identifier of the build
	Assets    []string // Logical names of all emitted assets
}
