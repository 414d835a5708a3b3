package content

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/terryzhangxr/typace/internal/model"
)

// Renderer turns markdown bodies into HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a renderer. With sanitize set, output goes through a
// user-generated-content policy that drops scripts, event handlers and
// other active content while keeping heading anchors and code languages.
func NewRenderer(sanitize bool) *Renderer {
	r := &Renderer{md: newMarkdown()}
	if sanitize {
		r.policy = sanitizePolicy()
	}
	return r
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithUnsafe(),
		),
	)
}

func sanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "li", "sup", "div")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#-]+$`)).OnElements("code")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^footnotes?(-[\w-]+)?$`)).OnElements("div", "a", "sup", "ol", "li", "hr")
	p.AllowAttrs("role").Matching(regexp.MustCompile(`^doc-[a-z]+$`)).OnElements("a", "div", "ol", "li", "hr")
	return p
}

// Render converts body to HTML.
func (r *Renderer) Render(body []byte) (template.HTML, error) {
	html, _, err := r.Convert(body)
	return html, err
}

// Convert renders body and returns its table of contents. Both come from the
// same parse, so every TOC entry links to a heading id present in the HTML.
func (r *Renderer) Convert(body []byte) (template.HTML, []model.TOCEntry, error) {
	doc := parse(r.md.Parser(), body)
	toc := collectTOC(doc, body)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, body, doc); err != nil {
		return "", nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	if r.policy != nil {
		return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), toc, nil
	}
	return template.HTML(buf.String()), toc, nil
}

// parse builds the document tree with a fresh heading id counter.
func parse(p parser.Parser, body []byte) ast.Node {
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	return p.Parse(text.NewReader(body), parser.WithContext(ctx))
}
