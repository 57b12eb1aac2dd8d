// Package body converts optional markdown topic content into DITA body
// markup ready for template binding.
package body

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/ctwg/ditagen/internal/ditaml"
)

// FromMarkdown converts markdown into DITA body markup: paragraphs,
// code blocks, lists, block quotes, and sections cut at headings.
// Heading levels are flattened; DITA sections do not nest.
func FromMarkdown(src []byte) (string, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var blocks []string
	var section []string

	flushSection := func() {
		if section == nil {
			return
		}
		var b strings.Builder
		b.WriteString("<section>\n")
		for _, line := range section {
			b.WriteString("    " + strings.ReplaceAll(line, "\n", "\n    ") + "\n")
		}
		b.WriteString("</section>")
		blocks = append(blocks, b.String())
		section = nil
	}

	appendBlock := func(s string) {
		if s == "" {
			return
		}
		if section != nil {
			section = append(section, s)
			return
		}
		blocks = append(blocks, s)
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushSection()
			title := ditaml.EscapeXML(string(node.Text(src)))
			section = []string{"<title>" + title + "</title>"}
		case *ast.Paragraph:
			appendBlock("<p>" + ditaml.EscapeXML(string(node.Text(src))) + "</p>")
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			appendBlock("<codeblock>" + ditaml.EscapeXML(blockLines(n, src)) + "</codeblock>")
		case *ast.List:
			appendBlock(renderList(node, src))
		case *ast.Blockquote:
			appendBlock("<lq>" + ditaml.EscapeXML(string(node.Text(src))) + "</lq>")
		}
	}
	flushSection()

	return strings.Join(blocks, "\n"), nil
}

func renderList(list *ast.List, src []byte) string {
	tag := "ul"
	if list.IsOrdered() {
		tag = "ol"
	}

	var b strings.Builder
	b.WriteString("<" + tag + ">\n")
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		b.WriteString("    <li>")
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch cn := c.(type) {
			case *ast.List:
				b.WriteString("\n    " + strings.ReplaceAll(renderList(cn, src), "\n", "\n    "))
			default:
				t := ditaml.EscapeXML(string(c.Text(src)))
				if t == "" {
					continue
				}
				if !first {
					b.WriteString(" ")
				}
				b.WriteString(t)
				first = false
			}
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func blockLines(n ast.Node, src []byte) string {
	var b bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
