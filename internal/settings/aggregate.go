// internal/settings/aggregate.go
//
// Fan-out / fan-in aggregation of one tenant's settings.
//
// Workflow
// --------
//  1. Daily key → bearer for portal and ocumail.
//  2. Three concurrent fetches: passport profile, portal website, ocumail
//     settings.  A failed fetch leaves its section at defaults and adds a
//     line to Result.Errors; the others carry on.
//  3. Merge onto Defaults(id) in a fixed order: settings rows, profile,
//     website.
//
// Aggregate never returns a Go error and never panics on upstream data.
package settings

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/lumina/internal/dailykey"
	"github.com/yanizio/lumina/internal/metrics"
	"github.com/yanizio/lumina/internal/upstream"
)

// ErrNoPracticeID is the Result.Errors entry for an empty id.
const ErrNoPracticeID = "no practice id"

// Source is the subset of the upstream client the aggregator needs.
type Source interface {
	PracticeProfile(ctx context.Context, id string) (*upstream.Practice, error)
	Website(ctx context.Context, id, bearer string) (*upstream.Website, error)
	PracticeSettings(ctx context.Context, id, bearer string) ([]upstream.Setting, error)
}

// Result is always renderable.  Errors lists the sections that fell back
// to defaults.
type Result struct {
	Settings SiteSettings
	Errors   []string
}

// Partial reports whether any section degraded.
func (r Result) Partial() bool { return len(r.Errors) > 0 }

type Aggregator struct {
	src  Source
	keys *dailykey.Source
	log  *zap.Logger
}

// NewAggregator returns an Aggregator.  keys and log may be nil.
func NewAggregator(src Source, keys *dailykey.Source, log *zap.Logger) *Aggregator {
	if keys == nil {
		keys = dailykey.NewSource(nil)
	}
	if log == nil {
		log = zap.L()
	}
	return &Aggregator{src: src, keys: keys, log: log.Named("settings")}
}

// Aggregate builds the SiteSettings for practiceID.
func (a *Aggregator) Aggregate(ctx context.Context, practiceID string) Result {
	s := Defaults(practiceID)
	if practiceID == "" {
		metrics.SettingsAggregationsTotal.WithLabelValues("empty").Inc()
		return Result{Settings: s, Errors: []string{ErrNoPracticeID}}
	}

	bearer := a.keys.Key()

	var (
		g       errgroup.Group
		profile *upstream.Practice
		website *upstream.Website
		rows    []upstream.Setting
		errs    [3]error
	)
	g.Go(func() error {
		profile, errs[0] = a.src.PracticeProfile(ctx, practiceID)
		return nil
	})
	g.Go(func() error {
		website, errs[1] = a.src.Website(ctx, practiceID, bearer)
		return nil
	})
	g.Go(func() error {
		rows, errs[2] = a.src.PracticeSettings(ctx, practiceID, bearer)
		return nil
	})
	_ = g.Wait()

	var out []string
	for i, section := range [...]string{"practice profile", "website", "practice settings"} {
		if errs[i] != nil {
			a.log.Warn("section fell back to defaults",
				zap.String("practice_id", practiceID),
				zap.String("section", section),
				zap.Error(errs[i]))
			out = append(out, fmt.Sprintf("%s: %v", section, errs[i]))
		}
	}

	if errs[2] == nil {
		applySettings(&s, rows)
	}
	if errs[0] == nil && profile != nil {
		applyProfile(&s, profile)
	}
	if errs[1] == nil && website != nil {
		applyWebsite(&s, website)
	}

	outcome := "complete"
	if len(out) > 0 {
		outcome = "partial"
	}
	metrics.SettingsAggregationsTotal.WithLabelValues(outcome).Inc()
	return Result{Settings: s, Errors: out}
}
