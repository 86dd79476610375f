package title

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func writeDoc(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestExtract_HeadingWinsOverFilename(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/whatever_name.md", "\n\n   # My Title   \n\nbody\n# Second\n")
	e := NewExtractor(fs, nil, nil)
	if got := e.Extract("/docs/whatever_name.md"); got != "My Title" {
		t.Fatalf("expected %q, got %q", "My Title", got)
	}
}

func TestExtract_FallbackFormatting(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/getting_started.md", "## Not a level one heading\n#NoSpace\ntext\n")
	e := NewExtractor(fs, nil, nil)
	if got := e.Extract("/docs/getting_started.md"); got != "Getting Started" {
		t.Fatalf("expected %q, got %q", "Getting Started", got)
	}
}

func TestLookup_UnreadableDocumentFallsBack(t *testing.T) {
	e := NewExtractor(afero.NewMemMapFs(), nil, nil)
	res := e.Lookup("/docs/release-notes.md")
	if res.FromHeading {
		t.Fatalf("missing document must not report a heading")
	}
	if res.Title != "Release Notes" {
		t.Fatalf("expected filename fallback, got %q", res.Title)
	}
}

func TestLookup_InvalidUTF8FallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/binary_blob.md", "# Title\n\xff\xfe\xfd")
	res := NewExtractor(fs, nil, nil).Lookup("/docs/binary_blob.md")
	if res.FromHeading || res.Title != "Binary Blob" {
		t.Fatalf("expected fallback for invalid utf-8, got %+v", res)
	}
}

func TestLookup_StripsByteOrderMark(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/bom.md", "\xef\xbb\xbf# With BOM\n")
	res := NewExtractor(fs, nil, nil).Lookup("/docs/bom.md")
	if !res.FromHeading || res.Title != "With BOM" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestFormat(t *testing.T) {
	cases := map[string]string{
		"getting_started": "Getting Started",
		"getting-started": "Getting Started",
		"api":             "Api",
		"README":          "Readme",
		"multi_word-name": "Multi Word Name",
	}
	for in, want := range cases {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDirectory_Priority(t *testing.T) {
	fs := afero.NewMemMapFs()
	e := NewExtractor(fs, nil, nil)

	if got := e.Directory("plugins", "/docs/plugins/README.md"); got != "Plugins" {
		t.Fatalf("expected static title without README, got %q", got)
	}

	writeDoc(t, fs, "/docs/plugins/README.md", "# Extension System\n")
	if got := e.Directory("plugins", "/docs/plugins/README.md"); got != "Extension System" {
		t.Fatalf("expected README heading to win, got %q", got)
	}
}

func TestDirectory_HeadinglessIndexIsIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/cli/README.md", "just some text\n")
	e := NewExtractor(fs, nil, nil)
	if got := e.Directory("cli", "/docs/cli/README.md"); got != "CLI Tools" {
		t.Fatalf("expected static mapping, got %q", got)
	}
}

func TestDirectory_FormatsUnknownNames(t *testing.T) {
	e := NewExtractor(afero.NewMemMapFs(), nil, nil)
	if got := e.Directory("how_to-guides", ""); got != "How To Guides" {
		t.Fatalf("unexpected title %q", got)
	}
	// Lookup is case-sensitive.
	if got := e.Directory("CLI", ""); got != "Cli" {
		t.Fatalf("unexpected title %q", got)
	}
}

func TestParserFor(t *testing.T) {
	p, err := ParserFor("")
	if err != nil || p.Name() != DefaultParser {
		t.Fatalf("expected default parser, got %v, %v", p, err)
	}
	if _, err := ParserFor("goldmark"); err != nil {
		t.Fatalf("goldmark parser should be registered: %v", err)
	}
	if _, err := ParserFor("asciidoc"); !errors.Is(err, ErrUnknownParser) {
		t.Fatalf("expected ErrUnknownParser, got %v", err)
	}
}

func TestGoldmarkParser_SkipsCodeFences(t *testing.T) {
	content := "```sh\n# not a title\n```\n\nReal Title\n==========\n\n# Later\n"
	p, err := ParserFor("goldmark")
	if err != nil {
		t.Fatal(err)
	}
	got, ok := p.FirstHeading([]byte(content))
	if !ok || got != "Real Title" {
		t.Fatalf("expected setext heading, got %q (ok=%v)", got, ok)
	}

	line, _ := ParserFor("line")
	if got, _ := line.FirstHeading([]byte(content)); got != "not a title" {
		t.Fatalf("line parser should take the first # line, got %q", got)
	}
}

func TestGoldmarkParser_InlineMarkup(t *testing.T) {
	p, _ := ParserFor("goldmark")
	got, ok := p.FirstHeading([]byte("## Sub\n\n# Hello *world*\n"))
	if !ok || got != "Hello world" {
		t.Fatalf("unexpected heading %q (ok=%v)", got, ok)
	}
}

func TestExtract_CarriageReturnLineEndings(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDoc(t, fs, "/docs/intro.md", "# Introduction\rWelcome\r")
	writeDoc(t, fs, "/docs/setup.md", "Preface\r\n# Setup Guide\r\nbody\r\n")
	for _, name := range Parsers() {
		p, err := ParserFor(name)
		if err != nil {
			t.Fatal(err)
		}
		e := NewExtractor(fs, p, nil)
		if got := e.Extract("/docs/intro.md"); got != "Introduction" {
			t.Errorf("%s: expected %q, got %q", name, "Introduction", got)
		}
		if got := e.Extract("/docs/setup.md"); got != "Setup Guide" {
			t.Errorf("%s: expected %q, got %q", name, "Setup Guide", got)
		}
	}
}

func TestGoldmarkParser_CodeSpanAndSoftBreak(t *testing.T) {
	p, _ := ParserFor("goldmark")
	if got, _ := p.FirstHeading([]byte("# Use `mdsummary` now\n")); got != "Use mdsummary now" {
		t.Fatalf("unexpected heading %q", got)
	}
	if got, _ := p.FirstHeading([]byte("Two\nLines\n===\n")); got != "Two Lines" {
		t.Fatalf("unexpected setext heading %q", got)
	}
}
