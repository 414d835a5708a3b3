package views

import (
	"strconv"

	"github.com/terryzhangxr/typace/internal/model"
)

// DefaultPageSize is the number of posts per home feed page.
const DefaultPageSize = 5

// Paginator walks a post slice one page at a time. Pages are 1-based.
type Paginator struct {
	posts   []*model.Post
	size    int
	current int
}

// NewPaginator starts on page 1. A size below 1 falls back to
// DefaultPageSize.
func NewPaginator(posts []*model.Post, size int) *Paginator {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Paginator{posts: posts, size: size, current: 1}
}

// Pages is ceil(len/size), and at least 1 so an empty feed still has a page.
func (p *Paginator) Pages() int {
	n := (len(p.posts) + p.size - 1) / p.size
	if n < 1 {
		return 1
	}
	return n
}

func (p *Paginator) Current() int { return p.current }

func (p *Paginator) Total() int { return len(p.posts) }

// Goto moves to page n. Out of range requests leave the current page alone
// and return false.
func (p *Paginator) Goto(n int) bool {
	if n < 1 || n > p.Pages() {
		return false
	}
	p.current = n
	return true
}

func (p *Paginator) Next() bool { return p.Goto(p.current + 1) }

func (p *Paginator) Prev() bool { return p.Goto(p.current - 1) }

func (p *Paginator) HasNext() bool { return p.current < p.Pages() }

func (p *Paginator) HasPrev() bool { return p.current > 1 }

// Items is the slice [(current-1)*size, current*size) of the posts.
func (p *Paginator) Items() []*model.Post {
	return PageSlice(p.posts, p.current, p.size)
}

// PageSlice returns page n of posts, or nil when the page is empty.
func PageSlice(posts []*model.Post, n, size int) []*model.Post {
	start := (n - 1) * size
	if n < 1 || size < 1 || start >= len(posts) {
		return nil
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

// PageURL is the home feed URL of page n.
func PageURL(n int) string {
	if n <= 1 {
		return "/"
	}
	return "/page/" + strconv.Itoa(n) + "/"
}
