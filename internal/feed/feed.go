// Package feed writes the machine-readable artifacts derived from the post
// index: sitemap.xml, rss.xml and search.json.
package feed

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/terryzhangxr/typace/internal/model"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the home page, the given listing pages and every post.
// Listing paths are site-relative, e.g. "/archive/".
func Sitemap(baseURL string, posts []*model.Post, listings []string, now time.Time) ([]byte, error) {
	set := urlSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{
		Loc:        baseURL + "/",
		LastMod:    now.Format("2006-01-02"),
		ChangeFreq: "daily",
		Priority:   "1.0",
	})
	for _, path := range listings {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + path,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        baseURL + p.Permalink,
			LastMod:    p.Date.Format("2006-01-02"),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Channel describes the site for the RSS feed.
type Channel struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
}

// RSS renders an RSS 2.0 document with the newest limit posts. A limit of
// zero or less includes every post.
func RSS(ch Channel, posts []*model.Post, limit int) (string, error) {
	f := &feeds.Feed{
		Title:       ch.Title,
		Link:        &feeds.Link{Href: ch.BaseURL + "/"},
		Description: ch.Description,
	}
	if ch.Author != "" {
		f.Author = &feeds.Author{Name: ch.Author}
	}
	if len(posts) > 0 {
		f.Created = posts[0].Date
		f.Updated = posts[0].Date
	}

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	for _, p := range posts {
		link := ch.BaseURL + p.Permalink
		f.Items = append(f.Items, &feeds.Item{
			Id:          link,
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Excerpt,
			Created:     p.Date,
		})
	}

	rss, err := f.ToRss()
	if err != nil {
		return "", fmt.Errorf("encode rss: %w", err)
	}
	return rss, nil
}

// SearchEntry is one record of search.json.
type SearchEntry struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Excerpt string   `json:"excerpt"`
	Content string   `json:"content"`
	URL     string   `json:"url"`
}

// SearchIndex is the client-side search data, in index order.
func SearchIndex(posts []*model.Post) ([]byte, error) {
	entries := make([]SearchEntry, 0, len(posts))
	for _, p := range posts {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, SearchEntry{
			Slug:    p.Slug,
			Title:   p.Title,
			Date:    p.Date.Format("2006-01-02"),
			Tags:    tags,
			Excerpt: p.Excerpt,
			Content: p.Plain,
			URL:     p.Permalink,
		})
	}
	out, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode search index: %w", err)
	}
	return out, nil
}
