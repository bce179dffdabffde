// Package coverage ingests LCOV tracefiles and answers line-range coverage
// queries for scored functions.
package coverage

import (
	"path/filepath"
	"strconv"
	"strings"
)

// LineCoverage maps a 1-based line number to its recorded hit count.
type LineCoverage map[int]uint64

// ParseLCOV parses LCOV tracefile content into a per-file line coverage map.
// Only SF:, DA: and end_of_record records matter; everything else in the
// tracefile is ignored.
func ParseLCOV(content string) map[string]LineCoverage {
	result := make(map[string]LineCoverage)

	var currentFile string
	currentLines := LineCoverage{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SF:"):
			currentFile = strings.TrimPrefix(line, "SF:")
			currentLines = LineCoverage{}
		case strings.HasPrefix(line, "DA:"):
			// DA:line_number,hit_count
			rest := strings.TrimPrefix(line, "DA:")
			parts := strings.SplitN(rest, ",", 2)
			if len(parts) != 2 {
				continue
			}
			ln, lnErr := strconv.Atoi(parts[0])
			hits, hitsErr := strconv.ParseUint(parts[1], 10, 64)
			if lnErr == nil && hitsErr == nil {
				currentLines[ln] = hits
			}
		case line == "end_of_record":
			if currentFile != "" {
				result[currentFile] = currentLines
				currentFile = ""
				currentLines = LineCoverage{}
			}
		}
	}

	return result
}

// ForRange computes the coverage percentage (0-100) over a 1-based inclusive
// line range. Lines the tracefile never instrumented do not count against
// the range; a range with no instrumented lines is 0.
func ForRange(cov LineCoverage, start, end int) float64 {
	var instrumented, hit int
	for ln := start; ln <= end; ln++ {
		count, ok := cov[ln]
		if !ok {
			continue
		}
		instrumented++
		if count > 0 {
			hit++
		}
	}

	if instrumented == 0 {
		return 0
	}
	return 100 * float64(hit) / float64(instrumented)
}

// SourceToModulePath converts a source path to a Rust module path:
// "src/foo/bar.rs" -> "foo::bar", "src/foo/mod.rs" -> "foo".
func SourceToModulePath(path, srcDir string) string {
	rel, err := filepath.Rel(srcDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = path
	}

	s := strings.TrimSuffix(rel, ".rs")
	s = strings.ReplaceAll(s, "/", "::")
	s = strings.ReplaceAll(s, "\\", "::")

	if s == "mod" {
		return ""
	}
	return strings.TrimSuffix(s, "::mod")
}

// FindFileCoverage locates the tracefile record for a source path, trying an
// exact match first and then a suffix match in either direction to reconcile
// absolute tracefile paths with relative scan paths. Returns an empty map
// when the file was never instrumented.
func FindFileCoverage(sourcePath string, files map[string]LineCoverage) LineCoverage {
	if cov, ok := files[sourcePath]; ok {
		return cov
	}

	for lcovPath, cov := range files {
		if strings.HasSuffix(lcovPath, sourcePath) || strings.HasSuffix(sourcePath, lcovPath) {
			return cov
		}
	}

	return LineCoverage{}
}
