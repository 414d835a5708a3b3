package views

import (
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/terryzhangxr/typace/internal/model"
)

// Hit is one search result. Title and Excerpt are HTML with matches wrapped
// in <mark>.
type Hit struct {
	Post    *model.Post
	Title   template.HTML
	Excerpt template.HTML
	// MatchedTags lists the tags that contain the query.
	MatchedTags []string
}

// Results separates "nothing asked" (Active false) from "nothing found"
// (Active true, no hits).
type Results struct {
	Query  string
	Active bool
	Hits   []Hit
}

func (r Results) Empty() bool { return r.Active && len(r.Hits) == 0 }

// Search matches query case-insensitively as a literal substring against
// title, excerpt, plain body text and tags. The plain text is what
// search.json ships, so static and served search agree. A blank query yields inactive results.
func Search(posts []*model.Post, query string) Results {
	q := strings.TrimSpace(query)
	if q == "" {
		return Results{}
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))

	res := Results{Query: q, Active: true}
	for _, p := range posts {
		var tags []string
		for _, t := range p.Tags {
			if re.MatchString(t) {
				tags = append(tags, t)
			}
		}
		if len(tags) == 0 &&
			!re.MatchString(p.Title) &&
			!re.MatchString(p.Excerpt) &&
			!re.MatchString(p.Plain) {
			continue
		}
		res.Hits = append(res.Hits, Hit{
			Post:        p,
			Title:       Highlight(p.Title, re),
			Excerpt:     Highlight(p.Excerpt, re),
			MatchedTags: tags,
		})
	}
	return res
}

// Highlight HTML-escapes s and wraps every match of re in <mark>.
func Highlight(s string, re *regexp.Regexp) template.HTML {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(s, -1) {
		if loc[0] == loc[1] {
			continue
		}
		b.WriteString(html.EscapeString(s[last:loc[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(s[loc[0]:loc[1]]))
		b.WriteString("</mark>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(s[last:]))
	return template.HTML(b.String())
}
