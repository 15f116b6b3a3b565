// components/redirect/redirect.go
//
// Booking and marketing redirects.  Pass-through routes forward the exact
// request URI to the portal; the dynamic ones consult the practice
// profile (see internal/redirect).
package redirect

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/component"
	links "github.com/yanizio/lumina/internal/redirect"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/upstream"
)

var _ component.Component = (*Comp)(nil)

type Comp struct{}

func init() { component.Register(&Comp{}) }

func (c *Comp) Name() string { return "redirect" }

func (c *Comp) Routes(r chi.Router, svc component.Services) {
	for _, pattern := range links.PassThrough {
		r.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, svc.Redirect.Portal(r.URL.RequestURI()), http.StatusFound)
		})
	}

	r.Get("/practice_website_redirect/{practiceID}/{mail}", func(w http.ResponseWriter, r *http.Request) {
		target := svc.Redirect.PracticeWebsite(r.Context(), chi.URLParam(r, "practiceID"))
		refresh(svc, w, r, target)
	})

	r.Get("/promo/{practiceID}/{campaign}", func(w http.ResponseWriter, r *http.Request) {
		target, err := svc.Redirect.Promo(r.Context(), chi.URLParam(r, "practiceID"), chi.URLParam(r, "campaign"))
		if errors.Is(err, upstream.ErrNotFound) {
			svc.View.Error(w, r, http.StatusNotFound, "This practice does not have a website yet.")
			return
		}
		if err != nil {
			svc.View.Error(w, r, upstream.HTTPStatus(err), component.ErrorMessage(err))
			return
		}
		http.Redirect(w, r, target, http.StatusFound)
	})

	r.Get("/practice_review_link/{practiceID}/{rating}/{appointment}/{source}", func(w http.ResponseWriter, r *http.Request) {
		target := svc.Redirect.ReviewLink(r.Context(),
			chi.URLParam(r, "practiceID"),
			chi.URLParam(r, "rating"),
			chi.URLParam(r, "appointment"),
			chi.URLParam(r, "source"))
		http.Redirect(w, r, target, http.StatusFound)
	})

	r.Get("/appointment_request_reschedule_link/{practiceID}/{appointment}", func(w http.ResponseWriter, r *http.Request) {
		refresh(svc, w, r, links.RescheduleTarget(chi.URLParam(r, "practiceID"), chi.URLParam(r, "appointment")))
	})
}

// refresh serves a meta-refresh page so mail clients that block 3xx on
// tracked links still land on target.
func refresh(svc component.Services, w http.ResponseWriter, r *http.Request, target string) {
	c := tenant.FromRequest(r)
	c.Head.SetTitle("Redirecting…")
	if err := svc.View.Render(w, c, "redirect", map[string]any{"Target": target}); err != nil {
		svc.Log.Warn("redirect page render failed", zap.Error(err))
		http.Redirect(w, r, target, http.StatusFound)
	}
}
