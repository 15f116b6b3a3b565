// components/practice/practice.go
//
// Practice component: the tenant home page, the settings API, and the
// customer-code lookup API.
//
// Routes
// ------
//
//	GET /api/practice/by-code/{code}  passport profile for a customer code
//	GET /api/{identifier}/settings    aggregated SiteSettings as JSON
//	GET /{identifier}                 practice home page
package practice

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/component"
	"github.com/yanizio/lumina/internal/ident"
	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/upstream"
)

// recentPosts is how many blog teasers the home page shows.
const recentPosts = 3

var _ component.Component = (*Comp)(nil)

type Comp struct{}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string { return "practice" }

func (c *Comp) Routes(r chi.Router, svc component.Services) {
	r.Get("/api/practice/by-code/{code}", byCode(svc))
	r.With(svc.TenantAPI).Get("/api/{identifier}/settings", settingsAPI)
	r.With(svc.TenantPage).Get("/{identifier}", home(svc))
}

// byCode resolves a customer code and returns the practice profile.  A
// code answered by passport reuses that payload; static and memoised
// codes fetch the profile by id.
func byCode(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "code")
		code := ident.NormalizeCode(raw)
		if code == "" {
			component.JSONError(w, http.StatusBadRequest, "Invalid customer code format")
			return
		}

		pid, p, err := svc.Resolver.ResolvePractice(r.Context(), code)
		if err == nil && p == nil {
			p, err = svc.Profiles.PracticeProfile(r.Context(), string(pid))
		}
		if err == nil {
			component.JSON(w, http.StatusOK, p)
			return
		}

		status := upstream.HTTPStatus(err)
		msg := component.ErrorMessage(err)
		if errors.Is(err, upstream.ErrNotFound) {
			msg = fmt.Sprintf("Practice not found for customer code: %s", raw)
		}
		svc.Log.Info("by-code lookup failed", zap.String("code", code), zap.Int("status", status), zap.Error(err))
		component.JSONError(w, status, msg)
	}
}

// settingsResponse flattens SiteSettings and adds the degraded sections.
type settingsResponse struct {
	settings.SiteSettings
	Errors []string `json:"errors,omitempty"`
}

func settingsAPI(w http.ResponseWriter, r *http.Request) {
	t := tenant.FromContext(r.Context()).Tenant
	component.JSON(w, http.StatusOK, settingsResponse{SiteSettings: t.Settings, Errors: t.Errors})
}

func home(svc component.Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := tenant.FromContext(r.Context())
		data := map[string]any{
			"BookingURL": "/" + c.Tenant.Slug() + "/new_booking",
			"Posts":      svc.Blog.Recent(r.Context(), c.Tenant.Slug(), recentPosts),
		}
		if err := svc.View.Render(w, c, "home", data); err != nil {
			svc.Log.Error("home render failed", zap.String("practice_id", string(c.Tenant.PracticeID)), zap.Error(err))
			svc.View.Error(w, r, http.StatusInternalServerError, "Something went wrong rendering this page.")
		}
	}
}
