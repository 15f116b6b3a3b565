// internal/tenant/tenant.go
//
// Tenant aggregate and loader.
//
// Context
// -------
// A Tenant is everything one request needs to render a practice site: the
// classified path identifier, the resolved practice id, and the aggregated
// SiteSettings.  It is built per request and never stored.
//
// Workflow
// --------
//  1. ident.Classify(raw) → NumericID passes through, CustomerCode goes
//     through the practice resolver, Invalid is rejected.
//  2. settings.Aggregate(id) with concurrent loads of one practice id
//     collapsed through singleflight.  Nothing is retained afterwards.
//
// Notes
// -----
//   - Status maps a Load error onto the HTTP status the error page uses.
//   - Tenant must be treated as read-only; slices inside Settings may be
//     shared between requests that were collapsed together.
package tenant

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/lumina/internal/ident"
	"github.com/yanizio/lumina/internal/practice"
	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/upstream"
)

// Tenant is the per-request practice aggregate.
type Tenant struct {
	Identifier ident.Identifier
	PracticeID practice.ID
	Settings   settings.SiteSettings
	Errors     []string // sections that fell back to defaults
}

// Slug is the path segment used to build links back into this tenant.
func (t *Tenant) Slug() string { return t.Identifier.Raw }

// Resolver turns a classified identifier into a practice id.
type Resolver interface {
	ResolveIdentifier(ctx context.Context, id ident.Identifier) (practice.ID, error)
}

// Aggregator builds SiteSettings for a practice id.
type Aggregator interface {
	Aggregate(ctx context.Context, practiceID string) settings.Result
}

// Loader builds Tenants.
type Loader struct {
	res Resolver
	agg Aggregator
	sfg singleflight.Group
	log *zap.Logger
}

func NewLoader(res Resolver, agg Aggregator, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.L()
	}
	return &Loader{res: res, agg: agg, log: log.Named("tenant")}
}

// Load classifies raw, resolves it, and aggregates settings.
func (l *Loader) Load(ctx context.Context, raw string) (*Tenant, error) {
	id := ident.Classify(raw)
	pid, err := l.res.ResolveIdentifier(ctx, id)
	if err != nil {
		l.log.Info("tenant resolution failed",
			zap.String("identifier", raw),
			zap.Stringer("kind", id.Kind),
			zap.Error(err))
		return nil, err
	}

	// Waiters share the result, so the work must not die with the
	// request that started it.
	v, _, shared := l.sfg.Do(string(pid), func() (any, error) {
		return l.agg.Aggregate(context.WithoutCancel(ctx), string(pid)), nil
	})
	res := v.(settings.Result)
	if res.Partial() {
		l.log.Warn("settings degraded",
			zap.String("practice_id", string(pid)),
			zap.Strings("errors", res.Errors),
			zap.Bool("shared", shared))
	}

	return &Tenant{
		Identifier: id,
		PracticeID: pid,
		Settings:   res.Settings,
		Errors:     res.Errors,
	}, nil
}

// Status maps a Load error to an HTTP status.
func Status(err error) int {
	if errors.Is(err, practice.ErrInvalidIdentifier) {
		return http.StatusNotFound
	}
	return upstream.HTTPStatus(err)
}
