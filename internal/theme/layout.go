// Package theme renders the site pages as gomponents node trees.
package theme

import (
	"embed"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/terryzhangxr/typace/internal/config"
	"github.com/terryzhangxr/typace/internal/model"
)

//go:embed assets
var Assets embed.FS

// AssetsDir is where Assets are written below the output root.
const AssetsDir = "assets"

// Theme holds the site-wide settings every page needs.
type Theme struct {
	cfg config.Config
}

func New(cfg config.Config) *Theme {
	return &Theme{cfg: cfg}
}

// Render writes a complete HTML document.
func Render(w io.Writer, n g.Node) error {
	return n.Render(w)
}

func (t *Theme) pageData(title, path string) model.PageData {
	return model.PageData{
		SiteTitle:   t.cfg.SiteTitle,
		PageTitle:   title,
		Description: t.cfg.Description,
		BaseURL:     t.cfg.BaseURL,
		Path:        path,
		Language:    t.cfg.Language,
	}
}

// layout wraps body nodes in the shared document shell.
func (t *Theme) layout(pd model.PageData, body ...g.Node) g.Node {
	lang := pd.Language
	if lang == "" {
		lang = "en"
	}
	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang(lang),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(pd.FullTitle())),
				g.If(pd.Description != "", Meta(Name("description"), Content(pd.Description))),
				Meta(g.Attr("property", "og:title"), Content(pd.FullTitle())),
				Meta(g.Attr("property", "og:url"), Content(pd.BaseURL+pd.Path)),
				g.If(pd.Cover != "", Meta(g.Attr("property", "og:image"), Content(pd.Cover))),
				Link(Rel("canonical"), Href(pd.BaseURL+pd.Path)),
				Link(Rel("alternate"), Type("application/rss+xml"), Title(pd.SiteTitle), Href("/rss.xml")),
				Link(Rel("stylesheet"), Href("/"+AssetsDir+"/site.css")),
			),
			Body(
				t.header(pd.Path),
				Main(Class("container"), g.Group(body)),
				t.footer(),
				Script(Src("/"+AssetsDir+"/site.js"), g.Attr("defer")),
			),
		),
	})
}

var navItems = []struct{ label, href string }{
	{"Home", "/"},
	{"Archive", "/archive/"},
	{"Tags", "/tags/"},
	{"Gallery", "/gallery/"},
	{"About", "/about/"},
	{"Search", "/search/"},
}

func (t *Theme) header(current string) g.Node {
	return Header(Class("site-header"),
		A(Class("brand"), Href("/"), g.Text(t.cfg.SiteTitle)),
		Nav(
			g.Map(navItems, func(item struct{ label, href string }) g.Node {
				return A(Href(item.href),
					g.If(item.href == current, Class("active")),
					g.Text(item.label))
			}),
		),
		Button(Class("theme-toggle"), Type("button"), Aria("label", "Toggle dark mode"), g.Attr("data-theme-toggle"), g.Text("◐")),
	)
}

func (t *Theme) footer() g.Node {
	return Footer(Class("site-footer"),
		P(g.Textf("© %d %s", time.Now().Year(), firstNonEmpty(t.cfg.Author, t.cfg.SiteTitle))),
		P(A(Href("/rss.xml"), g.Text("RSS")), g.Text(" · "), A(Href("/sitemap.xml"), g.Text("Sitemap"))),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func dateEl(d time.Time) g.Node {
	return g.El("time", g.Attr("datetime", d.Format("2006-01-02")), g.Text(d.Format("2006-01-02")))
}

func tagLink(tag string) g.Node {
	return A(Class("tag"), Href(TagURL(tag)), g.Text("#"+tag))
}

// TagURL is the page listing the posts of one tag.
func TagURL(tag string) string {
	return "/tags/" + url.PathEscape(TagPath(tag)) + "/"
}

var tagPathEscaper = strings.NewReplacer(
	"%", "%25",
	"/", "%2F",
	`\`, "%5C",
	"?", "%3F",
	"#", "%23",
)

// TagPath is the directory name of a tag page. Characters that cannot appear
// in a path segment are percent-escaped, so distinct tags get distinct
// directories.
func TagPath(tag string) string {
	switch tag {
	case ".":
		return "%2E"
	case "..":
		return "%2E%2E"
	}
	return tagPathEscaper.Replace(tag)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
