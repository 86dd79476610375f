package ignore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/spf13/afero"
)

// Matcher decides whether a path under the documentation root is left out of
// the outline. It checks the fixed pattern list, then custom globs, then the
// root's .gitignore when enabled.
// Reload takes the write lock; the Should* methods take the read lock.
type Matcher struct {
	mu             sync.RWMutex
	fs             afero.Fs
	rootDir        string
	patterns       []*regexp.Regexp
	customPatterns []string
	useGitignore   bool
	gitIgnore      gitignore.GitIgnore
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	Fs             afero.Fs
	RootDir        string
	SummaryFile    string
	CustomPatterns []string
	UseGitignore   bool
}

// NewMatcher validates the custom globs and builds a matcher.
func NewMatcher(options MatcherOptions) (*Matcher, error) {
	for _, p := range options.CustomPatterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	fs := options.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	m := &Matcher{
		fs:             fs,
		rootDir:        filepath.Clean(options.RootDir),
		patterns:       DefaultPatterns(options.SummaryFile),
		customPatterns: options.CustomPatterns,
		useGitignore:   options.UseGitignore,
	}
	if m.useGitignore {
		m.gitIgnore = m.loadGitignore()
	}
	return m, nil
}

// ShouldIgnoreEntry reports whether path is excluded. isDir says whether the
// entry is a directory; callers that already listed the entry know this
// without another stat.
func (m *Matcher) ShouldIgnoreEntry(path string, isDir bool) bool {
	rel, ok := m.relative(path)
	if !ok {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	subject := rel
	if isDir {
		subject += "/"
	}
	for _, re := range m.patterns {
		if re.MatchString(subject) {
			return true
		}
	}
	if m.matchesCustomPatterns(rel) {
		return true
	}
	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(rel, isDir); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

// ShouldIgnore reports whether path is excluded, checking the filesystem to
// tell directories from files. Paths that no longer exist are treated as
// files.
func (m *Matcher) ShouldIgnore(path string) bool {
	isDir := false
	if info, err := m.fs.Stat(path); err == nil {
		isDir = info.IsDir()
	}
	return m.ShouldIgnoreEntry(path, isDir)
}

// ShouldIgnoreDir reports whether the directory at path is excluded.
func (m *Matcher) ShouldIgnoreDir(path string) bool {
	return m.ShouldIgnoreEntry(path, true)
}

// Reload re-reads the root's .gitignore. It is a no-op when gitignore
// support is off.
func (m *Matcher) Reload() {
	if !m.useGitignore {
		return
	}
	gi := m.loadGitignore()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = gi
}

// relative returns path relative to the root with forward slashes. The root
// itself is never ignored.
func (m *Matcher) relative(path string) (string, bool) {
	rel := path
	if filepath.IsAbs(path) == filepath.IsAbs(m.rootDir) {
		if r, err := filepath.Rel(m.rootDir, path); err == nil && r != ".." && !strings.HasPrefix(r, "../") {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return "", false
	}
	return rel, true
}

// matchesCustomPatterns tries each glob against the relative path and its
// base name.
func (m *Matcher) matchesCustomPatterns(rel string) bool {
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}
	for _, pattern := range m.customPatterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func (m *Matcher) loadGitignore() gitignore.GitIgnore {
	f, err := m.fs.Open(filepath.Join(m.rootDir, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, m.rootDir, nil)
}
