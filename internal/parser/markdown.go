package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/docsight/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings are
// explicit in the format, so no typographic inference is needed: each
// heading starts a new page-equivalent section.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var b sectionBuilder
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.heading(node.Level, string(node.Text(src)))
		default:
			b.text(extractText(n, src))
		}
	}

	doc := b.build()
	// A markdown H1 doubles as the declared title.
	for _, h := range doc.Headings {
		if h.Level == 1 {
			doc.DeclaredTitle = h.Text
			break
		}
	}
	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// without inline children (fenced code, HTML blocks) carry their content
// in raw source lines; everything else comes from the inline tree.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
