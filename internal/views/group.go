// Package views holds the read-only projections of the post index used by
// the listing pages: archive, tags, pagination, search and recommendations.
package views

import (
	"sort"

	"github.com/terryzhangxr/typace/internal/model"
)

// Archive groups posts by calendar year. Years appear in the order they are
// first met in posts, so a date-sorted index yields newest years first, and
// each year keeps the order of posts.
func Archive(posts []*model.Post) []model.YearGroup {
	var groups []model.YearGroup
	index := make(map[int]int)
	for _, p := range posts {
		year := p.Date.Year()
		i, ok := index[year]
		if !ok {
			i = len(groups)
			index[year] = i
			groups = append(groups, model.YearGroup{Year: year})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	return groups
}

// TagIndex maps every tag to the posts carrying it, in index order. Posts
// without tags contribute nothing.
func TagIndex(posts []*model.Post) map[string][]model.TagEntry {
	out := make(map[string][]model.TagEntry)
	for _, g := range Tags(posts) {
		out[g.Name] = g.Entries
	}
	return out
}

// Tags is TagIndex with the tags kept in first-seen order.
func Tags(posts []*model.Post) []model.TagGroup {
	var groups []model.TagGroup
	index := make(map[string]int)
	for _, p := range posts {
		for _, tag := range p.Tags {
			i, ok := index[tag]
			if !ok {
				i = len(groups)
				index[tag] = i
				groups = append(groups, model.TagGroup{Name: tag})
			}
			groups[i].Entries = append(groups[i].Entries, model.TagEntry{
				Slug:  p.Slug,
				Title: p.Title,
				Date:  p.Date,
			})
		}
	}
	return groups
}

// TagStats counts posts per tag, most used first; ties keep first-seen order.
func TagStats(posts []*model.Post) []model.TagStat {
	groups := Tags(posts)
	stats := make([]model.TagStat, len(groups))
	for i, g := range groups {
		stats[i] = model.TagStat{Name: g.Name, Count: len(g.Entries)}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}

// Neighbors returns the posts before and after slug in index order: prev is
// the newer post, next the older one. Either may be nil.
func Neighbors(posts []*model.Post, slug string) (prev, next *model.Post) {
	for i, p := range posts {
		if p.Slug != slug {
			continue
		}
		if i > 0 {
			prev = posts[i-1]
		}
		if i+1 < len(posts) {
			next = posts[i+1]
		}
		return prev, next
	}
	return nil, nil
}
