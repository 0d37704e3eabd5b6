package usecase

import (
	"path/filepath"
	"strings"

	"github.com/relware/mapship/pkg/domain/model"
)

// mapExtension is the filename extension that marks an asset as a source map
const mapExtension = "map"

// ScanAssets selects the source maps among the build's emitted asset names.
// An asset qualifies when the substring after the last "." of its name,
// ignoring any "?..." query suffix, equals the map extension. The returned
// records keep the input order; the function has no side effects.
func ScanAssets(outputDir string, assetNames []string) []model.SourceMapRecord {
	var records []model.SourceMapRecord

	for _, name := range assetNames {
		trimmed := name
		if i := strings.IndexByte(trimmed, '?'); i >= 0 {
			trimmed = trimmed[:i]
		}

		dot := strings.LastIndexByte(trimmed, '.')
		if dot < 0 || trimmed[dot+1:] != mapExtension {
			continue
		}

		records = append(records, model.SourceMapRecord{
			Name: name,
			Path: filepath.Join(outputDir, name),
		})
	}

	return records
}
