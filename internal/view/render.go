// internal/view/render.go
//
// Central view engine: page lookup in the active theme, func-map injection,
// and an LRU of parsed *template.Template* sets.
//
// Public helpers
// --------------
//   - Render         – write a themed page to an http.ResponseWriter.
//   - RenderToString – return template.HTML (tests, previews).
//   - Error          – themed error page with a status code.
//
// Each page is parsed as its own set (layout + partials + page) so every
// page can define "content" without clashing.  Sets are cached per page
// unless the caller passes CacheSkip.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/cache"
	"github.com/yanizio/lumina/internal/head"
	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/theme"
)

// CachePolicy hints how the caller wants this template cached.
type CachePolicy int

const (
	CacheDefault CachePolicy = iota
	CacheSkip                // re-parse on every call (theme development)
)

// Page is the root value every template receives.
type Page struct {
	Ctx    *tenant.Context
	Head   *head.Builder
	Site   settings.SiteSettings
	Tenant *tenant.Tenant
	Data   any
}

// Engine renders pages of one theme.
type Engine struct {
	theme  *theme.Theme
	funcs  template.FuncMap
	sets   *cache.LRU[string, *template.Template]
	policy CachePolicy
	log    *zap.Logger
}

// New builds an Engine.  bucket is the S3 prefix used by bannerURL.
func New(th *theme.Theme, bucket string, policy CachePolicy, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.L()
	}
	return &Engine{
		theme:  th,
		funcs:  buildFuncMap(th, bucket),
		sets:   cache.New[string, *template.Template](64),
		policy: policy,
		log:    log.Named("view"),
	}
}

// Render executes page and streams it to w with a 200 status.
func (e *Engine) Render(w http.ResponseWriter, c *tenant.Context, page string, data any) error {
	return e.RenderStatus(w, c, http.StatusOK, page, data)
}

// RenderStatus renders into a buffer first so a template failure never
// leaves a half-written 200 response.
func (e *Engine) RenderStatus(w http.ResponseWriter, c *tenant.Context, status int, page string, data any) error {
	html, err := e.RenderToString(c, page, data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write([]byte(html))
	return err
}

// RenderToString executes page and returns the HTML.
func (e *Engine) RenderToString(c *tenant.Context, page string, data any) (template.HTML, error) {
	t, err := e.load(page)
	if err != nil {
		return "", err
	}
	p := Page{Ctx: c, Head: c.Head, Site: c.Settings(), Tenant: c.Tenant, Data: data}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Error renders the themed error page.  When the error page itself fails
// it falls back to plain text.
func (e *Engine) Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	c := tenant.FromRequest(r)
	c.Head.SetTitle(http.StatusText(status))
	data := map[string]any{"Status": status, "Message": msg}
	if err := e.RenderStatus(w, c, status, "error", data); err != nil {
		e.log.Error("error page render failed", zap.Error(err))
		http.Error(w, msg, status)
	}
}

func (e *Engine) load(page string) (*template.Template, error) {
	if e.policy != CacheSkip {
		if t, ok := e.sets.Get(page); ok {
			return t, nil
		}
	}
	t, err := template.New(page).Funcs(e.funcs).ParseFS(e.theme.FS, e.theme.PagePattern(page)...)
	if err != nil {
		return nil, err
	}
	if e.policy != CacheSkip {
		e.sets.Add(page, t)
	}
	return t, nil
}
