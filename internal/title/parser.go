package title

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultParser is the name of the parser used when none is configured.
const DefaultParser = "line"

// HeadingParser finds the first level-1 heading of a Markdown document.
type HeadingParser interface {
	Name() string
	FirstHeading(content []byte) (string, bool)
}

var registry = map[string]HeadingParser{}

// Register adds a heading parser to the registry under its name.
func Register(p HeadingParser) {
	registry[p.Name()] = p
}

// ParserFor returns the registered parser called name. An empty name selects
// DefaultParser.
func ParserFor(name string) (HeadingParser, error) {
	if name == "" {
		name = DefaultParser
	}
	p, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownParser, name, strings.Join(Parsers(), ", "))
	}
	return p, nil
}

// Parsers lists the registered parser names in sorted order.
func Parsers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownParser is returned by ParserFor for unregistered names.
var ErrUnknownParser = errors.New("unknown heading parser")

// lineParser takes the first line that starts with "# " once surrounding
// whitespace is trimmed. It knows nothing about code fences.
type lineParser struct{}

func (lineParser) Name() string { return "line" }

func (lineParser) FirstHeading(content []byte) (string, bool) {
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), true
		}
	}
	return "", false
}

// goldmarkParser returns the first top-level ATX or setext heading of
// level 1, so "#" lines inside code blocks are not mistaken for titles.
type goldmarkParser struct {
	md goldmark.Markdown
}

func (goldmarkParser) Name() string { return "goldmark" }

func (p goldmarkParser) FirstHeading(content []byte) (string, bool) {
	doc := p.md.Parser().Parse(text.NewReader(content))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		if t := strings.TrimSpace(headingText(h, content)); t != "" {
			return t, true
		}
	}
	return "", false
}

// headingText concatenates the text segments under h, dropping inline markup.
func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

func init() {
	Register(lineParser{})
	Register(goldmarkParser{md: goldmark.New()})
}
