package source

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader strips Markdown syntax with goldmark, keeping headings,
// paragraphs, list items and code as plain blocks.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	w := &blockWriter{}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		writeMarkdownBlock(w, n, src)
	}
	return w.String(), nil
}

func writeMarkdownBlock(w *blockWriter, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
		w.block(inlineText(node, src))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.block(blockLines(node, src))
	case *ast.List:
		var items []string
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			sub := &blockWriter{}
			for c := item.FirstChild(); c != nil; c = c.NextSibling() {
				writeMarkdownBlock(sub, c, src)
			}
			if s := sub.String(); s != "" {
				items = append(items, "- "+strings.ReplaceAll(s, "\n\n", "\n  "))
			}
		}
		w.block(strings.Join(items, "\n"))
	case *ast.ThematicBreak, *ast.HTMLBlock:
		// Layout only.
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			writeMarkdownBlock(w, c, src)
		}
	}
}

// inlineText flattens the inline children of a block.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.HardLineBreak() {
				b.WriteByte('\n')
			} else if node.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.Label(src))
		case *ast.RawHTML:
			// Inline markup carries no content.
		default:
			b.WriteString(inlineText(node, src))
		}
	}
	return strings.TrimSpace(b.String())
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}
