// Package textproc turns the model's markdown output into plain chat text.
package textproc

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.TaskList, extension.Strikethrough),
)

// PlainText strips markdown markup and returns the visible text, one line
// per block. Task-list items keep their text verbatim; no checkbox glyph
// is emitted for the [ ]/[x] marker.
func PlainText(input string) string {
	src := []byte(input)
	doc := md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(src))
				if node.HardLineBreak() || node.SoftLineBreak() {
					b.WriteByte('\n')
				}
			}
		case *ast.CodeSpan:
			// children are Text nodes, nothing extra to do
		case *ast.AutoLink:
			if entering {
				b.Write(node.URL(src))
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			if entering {
				lines := n.Lines()
				for i := 0; i < lines.Len(); i++ {
					seg := lines.At(i)
					b.Write(seg.Value(src))
				}
				return ast.WalkSkipChildren, nil
			}
		case *east.TaskCheckBox:
			// Drop the marker, keep the item text as-is.
			return ast.WalkSkipChildren, nil
		case *ast.ThematicBreak:
			// markup only, no visible text
		}

		if !entering && n.Type() == ast.TypeBlock {
			ensureNewline(&b)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimRight(b.String(), "\n")
}

func ensureNewline(b *strings.Builder) {
	if s := b.String(); s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}

var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&#39;", "'",
)

// DecodeEntities decodes the two HTML entities the renderer is known to
// emit. Other entities pass through untouched on purpose.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}
