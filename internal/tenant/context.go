// context.go defines the per-request Context passed into handlers and
// templates.  It owns the head.Builder so handlers can push tags into the
// eventual <head> section.
package tenant

import (
	"context"
	"net/http"

	"github.com/yanizio/lumina/internal/head"
	"github.com/yanizio/lumina/internal/requestinfo"
	"github.com/yanizio/lumina/internal/settings"
)

// Context is created once per request.  Tenant is nil on routes that are
// not scoped to a practice (info centre, redirects).
type Context struct {
	Request *http.Request
	Head    *head.Builder
	Info    *requestinfo.RequestInfo
	Tenant  *Tenant
}

// NewContext initialises a Context with an empty head builder.
func NewContext(r *http.Request, t *Tenant) *Context {
	return &Context{
		Request: r,
		Head:    head.New(),
		Info:    requestinfo.FromContext(r.Context()),
		Tenant:  t,
	}
}

// Settings returns the tenant settings, or defaults without a tenant.
func (c *Context) Settings() settings.SiteSettings {
	if c.Tenant == nil {
		return settings.Defaults("")
	}
	return c.Tenant.Settings
}

type ctxKey struct{}

// WithContext stores c in ctx.
func WithContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the Context stored by Middleware, or nil.
func FromContext(ctx context.Context) *Context {
	c, _ := ctx.Value(ctxKey{}).(*Context)
	return c
}

// FromRequest returns the stored Context or builds a tenant-less one.
func FromRequest(r *http.Request) *Context {
	if c := FromContext(r.Context()); c != nil {
		return c
	}
	return NewContext(r, nil)
}
