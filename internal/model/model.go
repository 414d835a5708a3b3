package model

import (
	"html/template"
	"time"
)

// Post is one content file after parsing. Posts are never modified once the
// index is built; a rebuild produces a fresh slice.
type Post struct {
	Slug        string
	Title       string
	Date        time.Time
	Tags        []string
	Cover       string
	Excerpt     string
	Content     string // markdown body
	Plain       string // body with markup stripped, used by search
	ContentHTML template.HTML
	TOC         []TOCEntry
	Extra       map[string]any
	SourcePath  string
	Permalink   string
}

// TOCEntry is a heading of a post body. Level is 1 or 2.
type TOCEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// Page is a standalone markdown page such as about.
type Page struct {
	Title       string
	ContentHTML template.HTML
	TOC         []TOCEntry
	Extra       map[string]any
	SourcePath  string
}

// TagEntry is the reduced post record listed under a tag.
type TagEntry struct {
	Slug  string
	Title string
	Date  time.Time
}

type TagGroup struct {
	Name    string
	Entries []TagEntry
}

type TagStat struct {
	Name  string
	Count int
}

type YearGroup struct {
	Year  int
	Posts []*Post
}

// Site is the result of one build: the post index and everything derived
// from it.
type Site struct {
	Posts   []*Post
	BySlug  map[string]*Post
	Archive []YearGroup
	Tags    []TagGroup
	About   *Page
	Built   time.Time
}

// Lookup returns the post with the given slug.
func (s *Site) Lookup(slug string) (*Post, bool) {
	if s == nil {
		return nil, false
	}
	p, ok := s.BySlug[slug]
	return p, ok
}
