// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  internal/site imports the
// components for their side effect, builds one Services value, and asks
// every component to add its routes to the shared chi router.
//
// Notes
// -----
//   - All() is sorted by name so route registration order is stable.
//   - Components never import each other; shared behaviour goes through
//     Services.

package component

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/blog"
	"github.com/yanizio/lumina/internal/infocentre"
	"github.com/yanizio/lumina/internal/practice"
	"github.com/yanizio/lumina/internal/redirect"
	"github.com/yanizio/lumina/internal/upstream"
	"github.com/yanizio/lumina/internal/view"
)

// Services is everything a component may use while registering routes.
type Services struct {
	// TenantPage and TenantAPI load the {identifier} tenant; they differ
	// only in how a load failure is rendered (themed page vs. JSON).
	TenantPage func(http.Handler) http.Handler
	TenantAPI  func(http.Handler) http.Handler

	Resolver   *practice.Resolver
	Profiles   ProfileSource
	Blog       *blog.Service
	InfoCentre *infocentre.Service
	Redirect   *redirect.Service
	View       *view.Engine
	Log        *zap.Logger
}

// ProfileSource fetches the public practice profile.
type ProfileSource interface {
	PracticeProfile(ctx context.Context, id string) (*upstream.Practice, error)
}

// Component contract.  Routes adds page and API endpoints to r.
type Component interface {
	Name() string
	Routes(r chi.Router, svc Services)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
