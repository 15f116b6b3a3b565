// components/blog/blog.go
//
// Blog component.
//
// Routes
// ------
//
//	GET /api/{identifier}/blogs           visible posts, newest first
//	GET /api/{identifier}/blogs/{blogID}  one post
//	GET /{identifier}/blog                listing page
//	GET /{identifier}/blog/{blogID}       post page
//
// The JSON list answers 200 with [] when nothing is available; a missing
// post answers 404.
package blog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/component"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/upstream"
)

var _ component.Component = (*Comp)(nil)

type Comp struct{}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string { return "blog" }

func (c *Comp) Routes(r chi.Router, svc component.Services) {
	r.Get("/api/{identifier}/blogs", func(w http.ResponseWriter, r *http.Request) {
		component.JSON(w, http.StatusOK, svc.Blog.List(r.Context(), chi.URLParam(r, "identifier")))
	})
	r.Get("/api/{identifier}/blogs/{blogID}", func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Blog.Get(r.Context(), chi.URLParam(r, "identifier"), chi.URLParam(r, "blogID"))
		if err != nil {
			component.JSONError(w, http.StatusNotFound, "Not Found")
			return
		}
		component.JSON(w, http.StatusOK, p)
	})

	r.Group(func(r chi.Router) {
		r.Use(svc.TenantPage)
		r.Get("/{identifier}/blog", list(svc))
		r.Get("/{identifier}/blog/{blogID}", post(svc))
	})
}

func list(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := tenant.FromContext(r.Context())
		c.Head.SetTitle("Blog | " + c.Head.TitleText())
		data := map[string]any{"Posts": svc.Blog.List(r.Context(), c.Tenant.Slug())}
		if err := svc.View.Render(w, c, "blog_list", data); err != nil {
			svc.Log.Error("blog list render failed", zap.Error(err))
			svc.View.Error(w, r, http.StatusInternalServerError, "Something went wrong rendering this page.")
		}
	}
}

func post(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := tenant.FromContext(r.Context())
		p, err := svc.Blog.Get(r.Context(), c.Tenant.Slug(), chi.URLParam(r, "blogID"))
		if errors.Is(err, upstream.ErrNotFound) {
			svc.View.Error(w, r, http.StatusNotFound, "Blog post not found.")
			return
		}
		if err != nil {
			svc.View.Error(w, r, upstream.HTTPStatus(err), component.ErrorMessage(err))
			return
		}

		c.Head.SetTitle(p.Title + " | " + c.Head.TitleText())
		if p.HeaderImage != "" {
			c.Head.Property("og:image", p.HeaderImage)
		}
		c.Head.Property("og:type", "article")
		if err := svc.View.Render(w, c, "blog_post", map[string]any{"Post": p}); err != nil {
			svc.Log.Error("blog post render failed", zap.String("blog_id", p.ID), zap.Error(err))
			svc.View.Error(w, r, http.StatusInternalServerError, "Something went wrong rendering this page.")
		}
	}
}
