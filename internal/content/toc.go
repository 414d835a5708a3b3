package content

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/terryzhangxr/typace/internal/model"
)

// Slugify lowercases text and joins its whitespace separated words with
// hyphens. Punctuation is kept.
func Slugify(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(text))), "-")
}

// headingIDs hands out heading ids for one document. A repeated id gets a
// numeric suffix: title, title-1, title-2.
type headingIDs struct {
	seen map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{seen: make(map[string]int)}
}

func (h *headingIDs) next(text string) string {
	id := Slugify(text)
	if id == "" {
		id = "heading"
	}
	n, dup := h.seen[id]
	h.seen[id] = n + 1
	if !dup {
		return id
	}
	for {
		candidate := id + "-" + strconv.Itoa(n)
		if _, taken := h.seen[candidate]; !taken {
			h.seen[candidate] = 1
			return candidate
		}
		n++
		h.seen[id] = n + 1
	}
}

// Generate implements goldmark's parser.IDs so rendered headings carry the
// same ids as the table of contents.
func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	return []byte(h.next(string(value)))
}

// Put implements parser.IDs.
func (h *headingIDs) Put(value []byte) {
	h.seen[string(value)]++
}

var tocMarkdown = newMarkdown()

// ExtractTOC lists the level 1 and level 2 headings of a markdown body in
// source order, ATX and setext alike. Deeper headings are not listed but
// still take part in id de-duplication, so the ids match what Renderer emits.
func ExtractTOC(body string) []model.TOCEntry {
	src := []byte(body)
	return collectTOC(parse(tocMarkdown.Parser(), src), src)
}

func collectTOC(doc ast.Node, source []byte) []model.TOCEntry {
	var toc []model.TOCEntry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		if h.Level > 2 {
			return ast.WalkSkipChildren, nil
		}
		id, ok := h.AttributeString("id")
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		idBytes, _ := id.([]byte)
		label := headingText(h, source)
		if label == "" || len(idBytes) == 0 {
			return ast.WalkSkipChildren, nil
		}
		toc = append(toc, model.TOCEntry{Level: h.Level, Text: label, ID: string(idBytes)})
		return ast.WalkSkipChildren, nil
	})
	return toc
}

// headingText is the plain text of a heading with inline markup removed.
func headingText(h ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
