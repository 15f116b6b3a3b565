// internal/site/site.go
//
// Site router assembly.
//
// Context
// -------
// One chi router serves every tenant; the tenant is the first path segment,
// not the host.  NewRouter wires the middleware chain, builds the shared
// component.Services, and lets every registered component add its routes.
//
// Middleware order
// ----------------
//  1. ForceHTTPS           – before anything is computed.
//  2. Recoverer            – a panic becomes a 500, never a dead socket.
//  3. requestinfo.Enrich   – request id, UA, geo.
//  4. AccessLog            – needs the request id from step 3.
//  5. Security             – response headers.
//
// Fixed routes: `/` → `/info_centre`, `/healthz`, `/metrics`, and the theme
// assets.  Everything else comes from components/*.
package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/blog"
	"github.com/yanizio/lumina/internal/component"
	"github.com/yanizio/lumina/internal/infocentre"
	"github.com/yanizio/lumina/internal/middleware"
	"github.com/yanizio/lumina/internal/practice"
	"github.com/yanizio/lumina/internal/redirect"
	"github.com/yanizio/lumina/internal/requestinfo"
	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/theme"
	"github.com/yanizio/lumina/internal/upstream"
	"github.com/yanizio/lumina/internal/view"

	_ "github.com/yanizio/lumina/components/blog"
	_ "github.com/yanizio/lumina/components/infocentre"
	_ "github.com/yanizio/lumina/components/practice"
	_ "github.com/yanizio/lumina/components/redirect"
)

// Deps are the long-lived services built by cmd/web.
type Deps struct {
	Upstream   *upstream.Client
	Resolver   *practice.Resolver
	Aggregator *settings.Aggregator
	Theme      *theme.Theme

	PortalURL  string
	S3URL      string
	OGImage    string
	ForceHTTPS bool
	NoCache    bool // re-parse templates on every render
	Log        *zap.Logger
}

// NewRouter returns the root handler.
func NewRouter(d Deps) (http.Handler, error) {
	log := d.Log
	if log == nil {
		log = zap.L()
	}

	policy := view.CacheDefault
	if d.NoCache {
		policy = view.CacheSkip
	}
	engine := view.New(d.Theme, d.S3URL, policy, log)
	loader := tenant.NewLoader(d.Resolver, d.Aggregator, log)
	hd := tenant.HeadDefaults{Bucket: d.S3URL, OGImage: d.OGImage}

	svc := component.Services{
		TenantPage: tenant.Middleware(loader, hd, func(w http.ResponseWriter, r *http.Request, status int, err error) {
			engine.Error(w, r, status, pageMessage(status))
		}),
		TenantAPI: tenant.Middleware(loader, hd, func(w http.ResponseWriter, r *http.Request, status int, err error) {
			component.JSONError(w, status, component.ErrorMessage(err))
		}),
		Resolver:   d.Resolver,
		Profiles:   d.Upstream,
		Blog:       blog.New(d.Upstream, d.Resolver, log),
		InfoCentre: infocentre.New(d.Upstream, log),
		Redirect:   redirect.New(d.PortalURL, d.Upstream, log),
		View:       engine,
		Log:        log,
	}

	assets, err := d.Theme.Assets()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.ForceHTTPS(d.ForceHTTPS))
	r.Use(chimw.Recoverer)
	r.Use(requestinfo.Enrich)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Security)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/info_centre", http.StatusFound)
	})
	prefix := "/themes/" + d.Theme.Name + "/assets/"
	r.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.FS(assets))))

	for _, c := range component.All() {
		c.Routes(r, svc)
		log.Debug("component mounted", zap.String("component", c.Name()))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		engine.Error(w, r, http.StatusNotFound, pageMessage(http.StatusNotFound))
	})
	return r, nil
}

// pageMessage is the visitor-facing text for a tenant load failure.
func pageMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return "We couldn't find that practice."
	case http.StatusBadRequest:
		return "That practice link looks incomplete."
	case http.StatusGatewayTimeout:
		return "The practice service is taking too long to respond. Please try again shortly."
	default:
		return "Something went wrong loading this practice."
	}
}
