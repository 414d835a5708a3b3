package theme

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/terryzhangxr/typace/internal/config"
	"github.com/terryzhangxr/typace/internal/model"
	"github.com/terryzhangxr/typace/internal/views"
)

// Home is one page of the feed with the profile and tag sidebar.
func (t *Theme) Home(pg *views.Paginator, stats []model.TagStat) g.Node {
	title := t.cfg.SiteTitle
	if pg.Current() > 1 {
		title = "Page " + strconv.Itoa(pg.Current())
	}
	return t.layout(t.pageData(title, views.PageURL(pg.Current())),
		Div(Class("with-sidebar"),
			Section(Class("feed"),
				g.Map(pg.Items(), postCard),
				g.If(pg.Total() == 0, P(Class("empty"), g.Text("No posts yet."))),
				pager(pg),
			),
			t.profile(pg.Total(), stats),
		),
	)
}

func postCard(p *model.Post) g.Node {
	return Article(Class("post-card"),
		g.If(p.Cover != "", A(Href(p.Permalink),
			Img(Class("cover"), Src(p.Cover), Alt(p.Title), g.Attr("loading", "lazy")))),
		H2(A(Href(p.Permalink), g.Text(p.Title))),
		Div(Class("meta"), dateEl(p.Date), g.Map(p.Tags, tagLink)),
		P(Class("excerpt"), g.Text(p.Excerpt)),
	)
}

func pager(pg *views.Paginator) g.Node {
	if pg.Pages() <= 1 {
		return nil
	}
	return Nav(Class("pager"),
		g.If(pg.HasPrev(), A(Rel("prev"), Href(views.PageURL(pg.Current()-1)), g.Text("← Newer"))),
		Span(g.Textf("%d / %d", pg.Current(), pg.Pages())),
		g.If(pg.HasNext(), A(Rel("next"), Href(views.PageURL(pg.Current()+1)), g.Text("Older →"))),
	)
}

func (t *Theme) profile(total int, stats []model.TagStat) g.Node {
	return Aside(Class("sidebar profile"),
		g.If(t.cfg.Avatar != "", Img(Class("avatar"), Src(t.cfg.Avatar), Alt(t.cfg.Author))),
		g.If(t.cfg.Author != "", H3(g.Text(t.cfg.Author))),
		g.If(t.cfg.Description != "", P(g.Text(t.cfg.Description))),
		Ul(Class("stats"),
			Li(A(Href("/archive/"), Strong(g.Text(strconv.Itoa(total))), g.Text(" posts"))),
			Li(A(Href("/tags/"), Strong(g.Text(strconv.Itoa(len(stats)))), g.Text(" tags"))),
		),
		g.If(len(t.cfg.Social) > 0, Ul(Class("social"),
			g.Map(sortedKeys(t.cfg.Social), func(name string) g.Node {
				return Li(A(Href(t.cfg.Social[name]), Rel("me noopener"), g.Text(name)))
			}),
		)),
		g.If(len(stats) > 0, Div(Class("tag-cloud"),
			g.Map(stats, func(s model.TagStat) g.Node {
				return A(Class("tag"), Href(TagURL(s.Name)),
					g.Text(s.Name), Sup(g.Text(strconv.Itoa(s.Count))))
			}),
		)),
	)
}

// Archive lists posts grouped by year.
func (t *Theme) Archive(groups []model.YearGroup) g.Node {
	return t.layout(t.pageData("Archive", "/archive/"),
		H1(g.Text("Archive")),
		g.Map(groups, func(yg model.YearGroup) g.Node {
			return Section(Class("year"),
				H2(g.Text(strconv.Itoa(yg.Year))),
				Ul(g.Map(yg.Posts, func(p *model.Post) g.Node {
					return Li(dateEl(p.Date), A(Href(p.Permalink), g.Text(p.Title)))
				})),
			)
		}),
	)
}

// Tags lists every tag with its posts.
func (t *Theme) Tags(groups []model.TagGroup) g.Node {
	return t.layout(t.pageData("Tags", "/tags/"),
		H1(g.Text("Tags")),
		Div(Class("tag-cloud"), g.Map(groups, func(tg model.TagGroup) g.Node {
			return A(Class("tag"), Href("#"+tagAnchor(tg.Name)),
				g.Text(tg.Name), Sup(g.Text(strconv.Itoa(len(tg.Entries)))))
		})),
		g.Map(groups, func(tg model.TagGroup) g.Node {
			return Section(Class("tag-group"), ID(tagAnchor(tg.Name)),
				H2(A(Href(TagURL(tg.Name)), g.Text("#"+tg.Name))),
				entryList(tg.Entries),
			)
		}),
	)
}

// Tag is the page of a single tag.
func (t *Theme) Tag(tg model.TagGroup) g.Node {
	return t.layout(t.pageData("#"+tg.Name, TagURL(tg.Name)),
		H1(g.Text("#"+tg.Name)),
		entryList(tg.Entries),
		P(A(Href("/tags/"), g.Text("All tags"))),
	)
}

func entryList(entries []model.TagEntry) g.Node {
	return Ul(g.Map(entries, func(e model.TagEntry) g.Node {
		return Li(dateEl(e.Date), A(Href("/posts/"+e.Slug+"/"), g.Text(e.Title)))
	}))
}

func tagAnchor(tag string) string {
	return "tag-" + TagPath(tag)
}

// About renders the standalone about page. A nil page shows the site
// description only.
func (t *Theme) About(page *model.Page) g.Node {
	if page == nil {
		return t.layout(t.pageData("About", "/about/"),
			H1(g.Text("About")),
			P(g.Text(firstNonEmpty(t.cfg.Description, "Nothing here yet."))),
		)
	}
	return t.layout(t.pageData(page.Title, "/about/"),
		Article(Class("post"),
			H1(g.Text(page.Title)),
			Div(Class("content"), g.Raw(string(page.ContentHTML))),
		),
	)
}

// Gallery shows the configured images; site.js opens them in a lightbox.
func (t *Theme) Gallery() g.Node {
	return t.layout(t.pageData("Gallery", "/gallery/"),
		H1(g.Text("Gallery")),
		g.If(len(t.cfg.Gallery) == 0, P(Class("empty"), g.Text("No images yet."))),
		Div(Class("gallery"), g.Map(t.cfg.Gallery, func(img config.GalleryImage) g.Node {
			return Figure(
				Img(Src(img.Src), Alt(firstNonEmpty(img.Alt, img.Caption)), g.Attr("loading", "lazy"), g.Attr("data-lightbox")),
				g.If(img.Caption != "", FigCaption(g.Text(img.Caption))),
			)
		})),
	)
}

// Search renders the search form and, when a query was given, its results.
func (t *Theme) Search(res views.Results) g.Node {
	return t.layout(t.pageData("Search", "/search/"),
		H1(g.Text("Search")),
		Form(Class("search"), Action("/search/"), Method("get"), g.Attr("data-search"),
			Input(Type("search"), Name("q"), Value(res.Query), Placeholder("Search posts"), AutoFocus()),
		),
		Div(Class("results"), g.Attr("data-search-results"),
			g.If(res.Empty(), P(Class("empty"), g.Textf("No posts match “%s”.", res.Query))),
			g.Map(res.Hits, func(h views.Hit) g.Node {
				return Article(Class("post-card"),
					H2(A(Href(h.Post.Permalink), g.Raw(string(h.Title)))),
					Div(Class("meta"), dateEl(h.Post.Date), g.Map(h.Post.Tags, tagLink)),
					P(Class("excerpt"), g.Raw(string(h.Excerpt))),
				)
			}),
		),
	)
}

// NotFound is written to 404.html.
func (t *Theme) NotFound() g.Node {
	return t.layout(t.pageData("Not Found", "/404.html"),
		H1(g.Text("404")),
		P(g.Text("This page does not exist. "), A(Href("/"), g.Text("Back home"))),
	)
}
