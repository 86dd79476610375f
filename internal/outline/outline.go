package outline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/mdsummary/internal/title"
	"github.com/spf13/afero"
)

// MarkdownExt is the extension of documents listed in the outline.
const MarkdownExt = ".md"

// ErrNotDirectory is returned when the documentation root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// errFound stops a subtree walk at the first Markdown document.
var errFound = errors.New("markdown found")

// Line is one entry of the outline. Link is relative to the documentation
// root with forward slashes; it is empty for entries without a target.
type Line struct {
	Depth int
	Title string
	Link  string
}

// String renders the line as an indented Markdown list item.
func (l Line) String() string {
	indent := strings.Repeat("  ", l.Depth)
	if l.Link == "" {
		return indent + "- " + l.Title
	}
	return fmt.Sprintf("%s- [%s](%s)", indent, l.Title, l.Link)
}

// Document is a listed Markdown file.
type Document struct {
	Title string
	Link  string
}

// IgnoreChecker decides whether a directory entry is left out.
type IgnoreChecker interface {
	ShouldIgnoreEntry(path string, isDir bool) bool
}

// TitleResolver supplies document and directory titles.
type TitleResolver interface {
	Extract(path string) string
	Directory(name, indexPath string) string
}

// Options configures a Builder.
type Options struct {
	Fs     afero.Fs
	Root   string
	Titles TitleResolver
	Ignore IgnoreChecker
	Logger *slog.Logger
}

// Builder turns a documentation tree into outline lines.
type Builder struct {
	fs     afero.Fs
	root   string
	titles TitleResolver
	ignore IgnoreChecker
	logger *slog.Logger
}

// NewBuilder returns a Builder for the tree at opts.Root. A nil Titles uses
// the default title extractor on opts.Fs; a nil Ignore ignores nothing.
func NewBuilder(opts Options) *Builder {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	titles := opts.Titles
	if titles == nil {
		titles = title.NewExtractor(fs, nil, logger)
	}
	ign := opts.Ignore
	if ign == nil {
		ign = nothingIgnored{}
	}
	return &Builder{
		fs:     fs,
		root:   filepath.Clean(opts.Root),
		titles: titles,
		ignore: ign,
		logger: logger,
	}
}

// Build returns the outline lines for dir, starting at depth. A directory
// with an index document gets a header line at depth and its entries one
// level deeper; without one its entries are inlined at depth. Documents come
// first, sorted by title, then each subdirectory holding Markdown in
// enumeration order. Every call returns a freshly allocated slice.
func (b *Builder) Build(dir string, depth int) ([]Line, error) {
	rel, err := b.relative(dir)
	if err != nil {
		return nil, err
	}
	entries, err := b.readDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", rel, err)
	}

	var lines []Line
	contentDepth := depth
	indexPath := filepath.Join(dir, title.IndexFile)
	hasIndex := b.isFile(indexPath) && !b.ignore.ShouldIgnoreEntry(indexPath, false)
	if hasIndex {
		dirTitle := b.titles.Directory(filepath.Base(dir), indexPath)
		lines = append(lines, Line{Depth: depth, Title: dirTitle, Link: path.Join(rel, title.IndexFile)})
		contentDepth = depth + 1
	}

	var docs []Document
	var subdirs []string
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if b.ignore.ShouldIgnoreEntry(p, entry.IsDir()) {
			continue
		}
		switch {
		case entry.IsDir():
			if b.HasMarkdown(p) {
				subdirs = append(subdirs, p)
			} else {
				b.logger.Debug("skipping directory without markdown", "path", p)
			}
		case isMarkdown(entry.Name()) && entry.Name() != title.IndexFile:
			doc, err := b.document(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
	}

	sortDocuments(docs)
	for _, d := range docs {
		lines = append(lines, Line{Depth: contentDepth, Title: d.Title, Link: d.Link})
	}

	for _, sub := range subdirs {
		childLines, err := b.Build(sub, contentDepth)
		if err != nil {
			return nil, err
		}
		lines = append(lines, childLines...)
	}
	return lines, nil
}

// HasMarkdown reports whether the subtree under dir holds at least one
// Markdown document that is not ignored. Unreadable parts of the subtree are
// skipped.
func (b *Builder) HasMarkdown(dir string) bool {
	err := afero.Walk(b.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || p == dir {
			return nil
		}
		if b.ignore.ShouldIgnoreEntry(p, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.IsDir() && isMarkdown(info.Name()) {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}

func (b *Builder) document(p string) (Document, error) {
	link, err := b.relative(p)
	if err != nil {
		return Document{}, err
	}
	return Document{Title: b.titles.Extract(p), Link: link}, nil
}

// relative returns p relative to the root using forward slashes.
func (b *Builder) relative(p string) (string, error) {
	rel, err := filepath.Rel(b.root, p)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

// readDir lists dir in case-insensitive name order, ties broken by the raw
// name so the order is total.
func (b *Builder) readDir(dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(b.fs, dir)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return lessFold(entries[i].Name(), entries[j].Name())
	})
	return entries, nil
}

func (b *Builder) isFile(p string) bool {
	info, err := b.fs.Stat(p)
	return err == nil && !info.IsDir()
}

func isMarkdown(name string) bool {
	return len(name) > len(MarkdownExt) && filepath.Ext(name) == MarkdownExt
}

func lessFold(a, c string) bool {
	la, lc := strings.ToLower(a), strings.ToLower(c)
	if la != lc {
		return la < lc
	}
	return a < c
}

// sortDocuments orders documents by title, ignoring case, then by link.
func sortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti, tj := strings.ToLower(docs[i].Title), strings.ToLower(docs[j].Title)
		if ti != tj {
			return ti < tj
		}
		return docs[i].Link < docs[j].Link
	})
}

type nothingIgnored struct{}

func (nothingIgnored) ShouldIgnoreEntry(string, bool) bool { return false }
