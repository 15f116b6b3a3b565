// components/infocentre/infocentre.go
//
// Info Centre component: the shared eye-health library.  Pages are not
// tenant-scoped; the trailing {identifier} only carries the visitor's
// practice through the links.
//
// Routes
// ------
//
//	GET /info_centre
//	GET /info_centre/list/{id}/{identifier}
//	GET /info_centre/view/{id}/{identifier}
package infocentre

import (
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

func (c *Comp) Name() string { return "infocentre" }

func (c *Comp) Routes(r chi.Router, svc component.Services) {
	r.Get("/info_centre", home(svc))
	r.Get("/info_centre/list/{id}/{identifier}", listing(svc))
	r.Get("/info_centre/view/{id}/{identifier}", item(svc))
}

func home(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := svc.InfoCentre.Categories(r.Context())
		if err != nil {
			fail(svc, w, r, err)
			return
		}
		c := tenant.FromRequest(r)
		c.Head.SetTitle("Information Centre")
		render(svc, w, r, c, "info_home", map[string]any{"Categories": cats, "Identifier": "0"})
	}
}

func listing(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.InfoCentre.Category(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(svc, w, r, err)
			return
		}
		c := tenant.FromRequest(r)
		c.Head.SetTitle(l.Category.Name + " | Information Centre")
		render(svc, w, r, c, "info_list", map[string]any{
			"Listing":    l,
			"Identifier": chi.URLParam(r, "identifier"),
		})
	}
}

func item(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.InfoCentre.Item(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			fail(svc, w, r, err)
			return
		}
		c := tenant.FromRequest(r)
		c.Head.SetTitle(a.Name + " | Information Centre")
		if a.Banner != "" {
			c.Head.Property("og:image", a.Banner)
		}
		render(svc, w, r, c, "info_item", map[string]any{
			"Article":    a,
			"Identifier": chi.URLParam(r, "identifier"),
		})
	}
}

func render(svc component.Services, w http.ResponseWriter, r *http.Request, c *tenant.Context, page string, data any) {
	if err := svc.View.Render(w, c, page, data); err != nil {
		svc.Log.Error("info centre render failed", zap.String("page", page), zap.Error(err))
		svc.View.Error(w, r, http.StatusInternalServerError, "Something went wrong rendering this page.")
	}
}

func fail(svc component.Services, w http.ResponseWriter, r *http.Request, err error) {
	status := upstream.HTTPStatus(err)
	if status == http.StatusNotFound {
		svc.View.Error(w, r, status, "This article could not be found.")
		return
	}
	svc.Log.Warn("info centre upstream failed", zap.String("path", r.URL.Path), zap.Error(err))
	svc.View.Error(w, r, status, component.ErrorMessage(err))
}
