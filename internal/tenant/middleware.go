// internal/tenant/middleware.go
//
// Tenant middleware for routes whose first segment is {identifier}.
//
// The middleware loads the Tenant, seeds the head builder from its
// settings, and stores a *Context for handlers.  Load failures are handed
// to the ErrorFunc together with the status from Status().
package tenant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/lumina/internal/metrics"
	"github.com/yanizio/lumina/internal/settings"
)

// ParamIdentifier is the chi URL parameter carrying the tenant segment.
const ParamIdentifier = "identifier"

// ErrorFunc renders a tenant load failure.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, status int, err error)

// HeadDefaults controls head seeding.
type HeadDefaults struct {
	Bucket  string // S3 prefix for relative banner keys
	OGImage string // used when the practice has no banner
}

// Middleware returns chi-compatible middleware backed by l.
func Middleware(l *Loader, hd HeadDefaults, onErr ErrorFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.ActiveTenants.Inc()
			defer metrics.ActiveTenants.Dec()

			t, err := l.Load(r.Context(), chi.URLParam(r, ParamIdentifier))
			if err != nil {
				onErr(w, r, Status(err), err)
				return
			}

			c := NewContext(r, t)
			SeedHead(c, hd)
			c.Request = r.WithContext(WithContext(r.Context(), c))
			next.ServeHTTP(w, c.Request)
		})
	}
}

// SeedHead applies the practice-level defaults: title from the practice
// name, description from the first banner text, og:image from the first
// banner image.
func SeedHead(c *Context, hd HeadDefaults) {
	s := c.Settings()
	h := c.Head

	h.SetTitle(s.DisplayName())
	h.Property("og:title", h.TitleText())
	h.Property("og:type", "website")

	image := hd.OGImage
	if len(s.Banners) > 0 {
		if s.Banners[0].Text != "" {
			h.SetDescription(s.Banners[0].Text)
		}
		if s.Banners[0].BannerImg != "" {
			image = settings.BannerImageURL(hd.Bucket, s.Banners[0].BannerImg)
		}
	}
	if image != "" {
		h.Property("og:image", image)
	}
	if c.Info != nil && c.Info.URL != nil {
		h.Property("og:url", c.Info.URL.String())
	}
}
