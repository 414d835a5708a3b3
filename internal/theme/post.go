package theme

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/terryzhangxr/typace/internal/model"
)

// PostView is everything the post page shows besides the post itself.
type PostView struct {
	Post        *model.Post
	Prev, Next  *model.Post
	Recommended []*model.Post
}

// Post renders the detail page. The whole body is always rendered; there is
// no deferred second half.
func (t *Theme) Post(v PostView) g.Node {
	p := v.Post
	pd := t.pageData(p.Title, p.Permalink)
	pd.Description = p.Excerpt
	pd.Cover = p.Cover

	return t.layout(pd,
		Div(Class("with-sidebar"),
			Article(Class("post"),
				g.If(p.Cover != "", Img(Class("cover"), Src(p.Cover), Alt(p.Title))),
				H1(g.Text(p.Title)),
				Div(Class("meta"), dateEl(p.Date), g.Map(p.Tags, tagLink)),
				Div(Class("content"), g.Attr("data-copy-code"), g.Raw(string(p.ContentHTML))),
				neighbors(v.Prev, v.Next),
				recommended(v.Recommended),
				t.comments(p),
			),
			tocNav(p.TOC),
		),
	)
}

func tocNav(toc []model.TOCEntry) g.Node {
	if len(toc) == 0 {
		return nil
	}
	return Aside(Class("sidebar toc"), g.Attr("data-toc"),
		P(Class("toc-title"), g.Text("Contents")),
		Ol(g.Map(toc, func(e model.TOCEntry) g.Node {
			return Li(Class("toc-h"+strconv.Itoa(e.Level)),
				A(Href("#"+e.ID), g.Text(e.Text)))
		})),
	)
}

func neighbors(prev, next *model.Post) g.Node {
	if prev == nil && next == nil {
		return nil
	}
	return Nav(Class("pager"),
		g.Iff(prev != nil, func() g.Node {
			return A(Rel("prev"), Href(prev.Permalink), g.Text("← "+prev.Title))
		}),
		g.Iff(next != nil, func() g.Node {
			return A(Rel("next"), Href(next.Permalink), g.Text(next.Title+" →"))
		}),
	)
}

func recommended(posts []*model.Post) g.Node {
	if len(posts) == 0 {
		return nil
	}
	return Section(Class("recommended"),
		H2(g.Text("You might also like")),
		Ul(g.Map(posts, func(p *model.Post) g.Node {
			return Li(A(Href(p.Permalink), g.Text(p.Title)))
		})),
	)
}

// comments renders the mount point of the external comment widget. The
// widget script is loaded by site.js from the configured endpoint.
func (t *Theme) comments(p *model.Post) g.Node {
	c := t.cfg.Comments
	if !c.Enabled() {
		return nil
	}
	return Section(Class("comments"), ID("comments"),
		g.Attr("data-comments-endpoint", c.Endpoint),
		g.If(c.Repo != "", g.Attr("data-comments-repo", c.Repo)),
		g.Attr("data-comments-term", p.Slug),
		NoScript(g.Text("Comments need JavaScript.")),
	)
}
