// Package server serves a built site for local preview and answers search
// queries against the current post index.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/terryzhangxr/typace/internal/model"
	"github.com/terryzhangxr/typace/internal/theme"
	"github.com/terryzhangxr/typace/internal/views"
)

// Holder publishes the site of the latest successful build. Readers never
// see a partially built index.
type Holder struct {
	site atomic.Pointer[model.Site]
}

func (h *Holder) Store(s *model.Site) { h.site.Store(s) }

func (h *Holder) Load() *model.Site { return h.site.Load() }

// Posts returns the current index, or nil before the first build.
func (h *Holder) Posts() []*model.Post {
	if s := h.Load(); s != nil {
		return s.Posts
	}
	return nil
}

type server struct {
	dir    string
	holder *Holder
	theme  *theme.Theme
	log    *zap.Logger
}

// New returns the preview handler for the site built into dir.
func New(dir string, holder *Holder, t *theme.Theme, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{dir: dir, holder: holder, theme: t, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.health)
	r.Get("/api/search", s.searchJSON)
	r.Get("/search/", s.searchPage)
	r.Get("/search", func(w http.ResponseWriter, r *http.Request) {
		target := "/search/"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
	})
	r.Get("/*", s.static)
	return r
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"posts":  len(s.holder.Posts()),
	})
}

type searchHit struct {
	Slug    string   `json:"slug"`
	URL     string   `json:"url"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
}

type searchResponse struct {
	Query  string      `json:"query"`
	Active bool        `json:"active"`
	Hits   []searchHit `json:"hits"`
}

func (s *server) searchJSON(w http.ResponseWriter, r *http.Request) {
	res := views.Search(s.holder.Posts(), r.URL.Query().Get("q"))

	out := searchResponse{Query: res.Query, Active: res.Active, Hits: []searchHit{}}
	for _, h := range res.Hits {
		out.Hits = append(out.Hits, searchHit{
			Slug:    h.Post.Slug,
			URL:     h.Post.Permalink,
			Title:   string(h.Title),
			Excerpt: string(h.Excerpt),
			Date:    h.Post.Date.Format("2006-01-02"),
			Tags:    h.Post.Tags,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) searchPage(w http.ResponseWriter, r *http.Request) {
	res := views.Search(s.holder.Posts(), r.URL.Query().Get("q"))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	noCache(w)
	if err := theme.Render(w, s.theme.Search(res)); err != nil {
		s.log.Error("render search page", zap.Error(err))
	}
}

// static serves the output directory without directory listings.
func (s *server) static(w http.ResponseWriter, r *http.Request) {
	upath := r.URL.Path
	if strings.HasSuffix(upath, "/") {
		if _, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(upath), "index.html")); err != nil {
			s.notFound(w, r)
			return
		}
	} else if _, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(upath))); err != nil {
		s.notFound(w, r)
		return
	}
	noCache(w)
	http.FileServer(http.Dir(s.dir)).ServeHTTP(w, r)
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	page, err := os.ReadFile(filepath.Join(s.dir, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}

func noCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
