package mdoutline

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/openkraft/devkit/internal/domain"
	"github.com/openkraft/devkit/internal/domain/lines"
)

// GoldmarkOutliner implements domain.OutlineExtractor with goldmark's parser.
type GoldmarkOutliner struct {
	md goldmark.Markdown
}

func New() *GoldmarkOutliner {
	return &GoldmarkOutliner{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Headings returns ATX and setext headings in document order. Headings inside
// code blocks are not reported.
func (o *GoldmarkOutliner) Headings(src []byte) []domain.Heading {
	doc := o.md.Parser().Parse(text.NewReader(src))

	var out []domain.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		out = append(out, domain.Heading{
			Level: h.Level,
			Line:  headingLine(h, src),
			Text:  strings.TrimSpace(string(h.Text(src))),
		})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// headingLine locates the heading by its first text segment. Setext headings
// report the line of their text, not the underline.
func headingLine(h *ast.Heading, src []byte) int {
	if segs := h.Lines(); segs.Len() > 0 {
		return lines.LineOf(src, segs.At(0).Start)
	}
	// Empty ATX headings ("#") carry no segments; fall back to the previous sibling.
	if prev := h.PreviousSibling(); prev != nil && prev.Lines().Len() > 0 {
		segs := prev.Lines()
		return lines.LineOf(src, segs.At(segs.Len()-1).Stop) + 1
	}
	return 1
}
