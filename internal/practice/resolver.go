// internal/practice/resolver.go
//
// Customer-code → practice-ID resolution.
//
// Context
// -------
// A tenant URL carries either a numeric practice ID or a customer code
// ("DEMO", "-DEMO-").  Everything downstream is keyed by the numeric ID,
// so codes go through Resolve first.
//
// Workflow
// --------
//  1. Normalise the code (trim dashes, upper-case).
//  2. Static table: config/DB overrides, then the built-in codes.  No I/O.
//  3. Memo store for the current daily window (memory or Redis).
//  4. singleflight-collapsed passport lookup; success is written back to
//     the memo store until the next UTC rollover.
//
// Notes
// -----
//   - No retries.  Errors carry the upstream taxonomy untouched.
//   - A failing memo store is logged and bypassed, never fatal.
package practice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/yanizio/lumina/internal/dailykey"
	"github.com/yanizio/lumina/internal/ident"
	"github.com/yanizio/lumina/internal/metrics"
	"github.com/yanizio/lumina/internal/upstream"
)

// ID is a canonical numeric practice identifier in string form.
type ID string

// ErrInvalidIdentifier is returned for path segments that are neither a
// numeric ID nor a customer code.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// builtinCodes are codes whose mapping is known ahead of time.
var builtinCodes = map[string]ID{
	"E007": "71",
	"DEMO": "67",
	"R003": "173",
	"D020": "741",
}

// Lookup is the upstream code lookup.  *upstream.Client satisfies it.
type Lookup interface {
	PracticeByCode(ctx context.Context, code string) (*upstream.Practice, error)
}

// Options tune a Resolver.  Zero values are usable.
type Options struct {
	Static map[string]string // extra code → id pairs; win over built-ins
	Store  Store             // nil → in-memory
	Keys   *dailykey.Source  // nil → wall clock
	Logger *zap.Logger
}

// Resolver maps customer codes to practice IDs.
type Resolver struct {
	lookup Lookup
	static map[string]ID
	store  Store
	keys   *dailykey.Source
	sfg    singleflight.Group
	log    *zap.Logger
}

// NewResolver wires a Resolver around lookup.
func NewResolver(lookup Lookup, opts Options) *Resolver {
	static := make(map[string]ID, len(builtinCodes)+len(opts.Static))
	for k, v := range builtinCodes {
		static[k] = v
	}
	for k, v := range opts.Static {
		if code := ident.NormalizeCode(k); code != "" && v != "" {
			static[code] = ID(v)
		}
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Keys == nil {
		opts.Keys = dailykey.NewSource(nil)
	}
	if opts.Logger == nil {
		opts.Logger = zap.L()
	}
	return &Resolver{
		lookup: lookup,
		static: static,
		store:  opts.Store,
		keys:   opts.Keys,
		log:    opts.Logger.Named("resolver"),
	}
}

// Resolve maps code to a practice ID.
func (r *Resolver) Resolve(ctx context.Context, code string) (ID, error) {
	id, _, err := r.ResolvePractice(ctx, code)
	return id, err
}

// ResolvePractice is Resolve plus the passport record when one was
// fetched.  Static and memoised hits return a nil record.
//
// The shared lookup runs detached from ctx's cancellation so a caller
// that goes away does not fail the others waiting on the same code.
// PracticeByCode keeps its own deadline.
func (r *Resolver) ResolvePractice(ctx context.Context, code string) (ID, *upstream.Practice, error) {
	code = ident.NormalizeCode(code)
	if code == "" {
		return "", nil, upstream.ErrNoIdentifier
	}

	if id, ok := r.static[code]; ok {
		metrics.ResolverLookupsTotal.WithLabelValues("static").Inc()
		return id, nil, nil
	}

	window := r.keys.Window()
	if id, ok, err := r.store.Get(ctx, window, code); err != nil {
		r.log.Warn("memo read failed", zap.String("code", code), zap.Error(err))
	} else if ok {
		metrics.ResolverLookupsTotal.WithLabelValues("memo").Inc()
		return ID(id), nil, nil
	}

	v, err, _ := r.sfg.Do(window+"/"+code, func() (interface{}, error) {
		shared := context.WithoutCancel(ctx)
		p, err := r.lookup.PracticeByCode(shared, code)
		if err != nil {
			return nil, err
		}
		if err := r.store.Set(shared, window, code, p.ID.String(), r.keys.UntilRollover()); err != nil {
			r.log.Warn("memo write failed", zap.String("code", code), zap.Error(err))
		}
		return p, nil
	})
	if err != nil {
		metrics.ResolverLookupsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("resolve %q: %w", code, err)
	}
	metrics.ResolverLookupsTotal.WithLabelValues("upstream").Inc()
	p := v.(*upstream.Practice)
	return ID(p.ID.String()), p, nil
}

// ResolveIdentifier resolves any classified path segment.  Numeric IDs
// pass through; invalid ones yield ErrInvalidIdentifier.
func (r *Resolver) ResolveIdentifier(ctx context.Context, id ident.Identifier) (ID, error) {
	switch id.Kind {
	case ident.NumericID:
		return ID(id.Raw), nil
	case ident.CustomerCode:
		return r.Resolve(ctx, id.Code())
	default:
		return "", fmt.Errorf("%q: %w", id.Raw, ErrInvalidIdentifier)
	}
}
