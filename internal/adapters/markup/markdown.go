// Package markup renders curriculum markdown to HTML, including the
// search-term highlight pass used when a reader arrives from a search
// result.
package markup

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/nakawebsvcs/kahuawaiwai/internal/domain/search"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Render converts markdown to sanitized HTML. On a conversion error the
// source is returned escaped rather than dropped.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// RenderHighlighted renders markdown with every normalized-equal
// occurrence of term wrapped in <mark>. Highlighting runs as a custom
// node renderer over the parsed AST's text nodes, never over raw markup
// source, so tags and attributes cannot be corrupted by a match.
func RenderHighlighted(source, term string) template.HTML {
	if strings.TrimSpace(term) == "" {
		return Render(source)
	}

	md := goldmark.New(
		goldmark.WithRendererOptions(
			goldmarkHTML.WithHardWraps(),
			renderer.WithNodeRenderers(
				util.Prioritized(&highlighter{term: term}, 100),
			),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// highlighter overrides the default text-node renderers to wrap matches
// in <mark> while escaping everything else as usual.
type highlighter struct {
	term string
}

// RegisterFuncs registers the overridden render functions.
func (h *highlighter) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindText, h.renderText)
	reg.Register(ast.KindString, h.renderString)
}

func (h *highlighter) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	value := string(n.Segment.Value(source))
	if n.IsRaw() {
		_, _ = w.WriteString(template.HTMLEscapeString(value))
		return ast.WalkContinue, nil
	}
	h.writeMarked(w, value)
	// mdRenderer runs with hard wraps, so both break kinds render as <br>.
	if n.HardLineBreak() || n.SoftLineBreak() {
		_, _ = w.WriteString("<br>\n")
	}
	return ast.WalkContinue, nil
}

func (h *highlighter) renderString(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.String)
	h.writeMarked(w, string(n.Value))
	return ast.WalkContinue, nil
}

// writeMarked writes value HTML-escaped, wrapping every match span in
// <mark> tags. Span boundaries come from the folded-offset map, so marks
// always fall on rune boundaries of the original text.
func (h *highlighter) writeMarked(w util.BufWriter, value string) {
	spans := search.FindSpans(value, h.term)
	prev := 0
	for _, sp := range spans {
		_, _ = w.WriteString(template.HTMLEscapeString(value[prev:sp.Start]))
		_, _ = w.WriteString("<mark>")
		_, _ = w.WriteString(template.HTMLEscapeString(value[sp.Start:sp.End]))
		_, _ = w.WriteString("</mark>")
		prev = sp.End
	}
	_, _ = w.WriteString(template.HTMLEscapeString(value[prev:]))
}
