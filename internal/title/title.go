package title

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// IndexFile is the landing document of a directory. Its presence gives the
// directory its own heading line in the outline.
const IndexFile = "README.md"

var utf8BOM = []byte("\xef\xbb\xbf")

// Result is the outcome of looking up a document's title. FromHeading is
// false when the title was derived from the filename, either because the
// document has no level-1 heading or because it could not be read.
type Result struct {
	Title       string
	FromHeading bool
}

// Extractor derives display titles for documents and directories.
type Extractor struct {
	fs     afero.Fs
	parser HeadingParser
	logger *slog.Logger
}

// NewExtractor returns an Extractor reading documents from fs. A nil parser
// selects the default line parser; a nil logger discards diagnostics.
func NewExtractor(fs afero.Fs, parser HeadingParser, logger *slog.Logger) *Extractor {
	if parser == nil {
		parser = lineParser{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{fs: fs, parser: parser, logger: logger}
}

// Extract returns the display title for the document at path.
func (e *Extractor) Extract(path string) string {
	return e.Lookup(path).Title
}

// Lookup reads the document at path and returns its first level-1 heading.
// Unreadable or non-UTF-8 documents fall back to the filename title.
func (e *Extractor) Lookup(path string) Result {
	content, err := afero.ReadFile(e.fs, path)
	if err != nil {
		e.logger.Debug("falling back to filename title", "path", path, "error", err)
		return Result{Title: FromFilename(path)}
	}
	content = bytes.TrimPrefix(content, utf8BOM)
	content = normalizeNewlines(content)
	if !utf8.Valid(content) {
		e.logger.Debug("falling back to filename title", "path", path, "error", "invalid utf-8")
		return Result{Title: FromFilename(path)}
	}
	if heading, ok := e.parser.FirstHeading(content); ok {
		return Result{Title: heading, FromHeading: true}
	}
	return Result{Title: FromFilename(path)}
}

// normalizeNewlines turns CRLF and bare CR line endings into LF.
func normalizeNewlines(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}

// Directory resolves the display title of the directory called name.
// indexPath is the location of its index document, or "" when there is none.
// A heading in the index document wins over the known-directory table,
// which wins over the formatted name.
func (e *Extractor) Directory(name, indexPath string) string {
	if indexPath != "" {
		if ok, _ := afero.Exists(e.fs, indexPath); ok {
			res := e.Lookup(indexPath)
			if res.Title != "" && res.Title != FromFilename(indexPath) {
				return res.Title
			}
		}
	}
	if t, ok := KnownDirectory(name); ok {
		return t
	}
	return Format(name)
}

// FromFilename formats the base name of path without its extension.
func FromFilename(path string) string {
	base := filepath.Base(path)
	return Format(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Format turns a file or directory name into a title: underscores and
// hyphens become spaces and every word is title-cased.
func Format(name string) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(name)
	return cases.Title(language.Und).String(s)
}
