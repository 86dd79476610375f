package ignore

import "regexp"

// DefaultSummaryFile is the name of the generated outline. It is always
// excluded so a previous run never lists itself.
const DefaultSummaryFile = "SUMMARY.md"

// builtinPatterns are matched anywhere in the root-relative path, starting
// at a path component boundary. Directory paths are tested with a trailing
// slash, so "node_modules/" excludes that directory at any depth.
var builtinPatterns = []string{
	// Generator scripts
	`(^|/)generate_[^/]*\.py$`,

	// Version control
	`(^|/)\.git/`,

	// Build output
	`(^|/)target/`,

	// Dependencies
	`(^|/)node_modules/`,

	// Bytecode cache
	`(^|/)__pycache__/`,

	// Rendered book
	`(^|/)book/`,
}

// DefaultPatterns compiles the fixed ignore list, led by the summary file.
// The summary pattern is not anchored at the end so temporary files written
// next to it are excluded too.
func DefaultPatterns(summaryFile string) []*regexp.Regexp {
	if summaryFile == "" {
		summaryFile = DefaultSummaryFile
	}
	patterns := make([]*regexp.Regexp, 0, len(builtinPatterns)+1)
	patterns = append(patterns, regexp.MustCompile(`(^|/)`+regexp.QuoteMeta(summaryFile)))
	for _, p := range builtinPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return patterns
}
