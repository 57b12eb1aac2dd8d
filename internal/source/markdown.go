package source

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	title := titleFromFilename(filename)
	var blocks []string

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			t := string(node.Text(src))
			if node.Level == 1 && title == titleFromFilename(filename) && t != "" {
				title = t
			}
			if t != "" {
				blocks = append(blocks, t)
			}
		default:
			if t := nodeText(n, src); t != "" {
				blocks = append(blocks, t)
			}
		}
	}

	return &Document{
		Title: title,
		Text:  strings.Join(blocks, "\n\n"),
	}, nil
}

func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	switch n.Kind() {
	case ast.KindList:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + string(item.Text(src)))
		}
	default:
		b.Write(n.Text(src))
	}
	return strings.TrimSpace(b.String())
}
