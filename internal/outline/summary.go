package outline

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/mdsummary/internal/title"
)

// SummaryTitle heads every generated outline.
const SummaryTitle = "# Summary"

// Assemble builds the complete outline text for the documentation root:
// the title, the root documents sorted by filename, then one block per
// top-level directory holding Markdown. Blocks are separated by blank lines.
// Only a root that cannot be listed is an error.
func (b *Builder) Assemble() (string, error) {
	info, err := b.fs.Stat(b.root)
	if err != nil {
		return "", fmt.Errorf("read docs root %s: %w", b.root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("read docs root %s: %w", b.root, ErrNotDirectory)
	}
	entries, err := b.readDir(b.root)
	if err != nil {
		return "", fmt.Errorf("read docs root %s: %w", b.root, err)
	}

	out := []string{SummaryTitle, ""}

	var rootDocs []string
	var dirs []string
	for _, entry := range entries {
		p := filepath.Join(b.root, entry.Name())
		if b.ignore.ShouldIgnoreEntry(p, entry.IsDir()) {
			continue
		}
		switch {
		case entry.IsDir():
			if b.HasMarkdown(p) {
				dirs = append(dirs, p)
			}
		case isMarkdown(entry.Name()) && entry.Name() != title.IndexFile:
			rootDocs = append(rootDocs, entry.Name())
		}
	}

	sort.Strings(rootDocs)
	for _, name := range rootDocs {
		line := Line{Title: b.titles.Extract(filepath.Join(b.root, name)), Link: name}
		out = append(out, line.String())
	}
	if len(rootDocs) > 0 {
		out = append(out, "")
	}

	for _, dir := range dirs {
		lines, err := b.Build(dir, 0)
		if err != nil {
			return "", err
		}
		for _, l := range lines {
			out = append(out, l.String())
		}
		out = append(out, "")
	}

	b.logger.Debug("assembled summary", "root", b.root, "documents", len(rootDocs), "sections", len(dirs))
	return strings.Join(out, "\n"), nil
}
