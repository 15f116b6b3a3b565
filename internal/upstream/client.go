// internal/upstream/client.go
//
// HTTP clients for the three upstream services.
//
// Context
// -------
// Every piece of tenant content lives in someone else's API:
//
//	passport     practice profile, code lookup
//	portal       website payload, blogs            (eyecareportal)
//	ocumail      practice settings, info centre
//
// Client wraps one resty client per service and funnels every call through
// get(), which owns the status-to-error mapping, the JSON decode, logging,
// and the Prometheus observation.  Methods return wire types from types.go
// and never retry.
//
// Notes
// -----
//   - Bodies are read raw and decoded with encoding/json so that a decode
//     failure can be told apart from a transport failure (ErrInvalidData vs
//     ErrTimeout).
//   - Only the code lookup carries its own deadline by default; the client
//     wide timeout is 0 (none) unless configured.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/metrics"
)

// Service names, also used as metric labels.
const (
	Passport = "passport"
	Portal   = "portal"
	Ocumail  = "ocumail"
)

// Config holds base URLs and timeouts.
type Config struct {
	PassportURL    string
	PortalURL      string
	OcumailURL     string
	LookupTimeout  time.Duration // code lookup only; 0 → 5s
	RequestTimeout time.Duration // every call; 0 → none
}

// Client talks to passport, portal, and ocumail.
type Client struct {
	passport      *resty.Client
	portal        *resty.Client
	ocumail       *resty.Client
	lookupTimeout time.Duration
	log           *zap.Logger
}

const defaultLookupTimeout = 5 * time.Second

// New builds a Client.  A nil logger falls back to zap.L().
func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.L()
	}
	lt := cfg.LookupTimeout
	if lt <= 0 {
		lt = defaultLookupTimeout
	}
	return &Client{
		passport:      newResty(cfg.PassportURL, cfg.RequestTimeout),
		portal:        newResty(cfg.PortalURL, cfg.RequestTimeout),
		ocumail:       newResty(cfg.OcumailURL, cfg.RequestTimeout),
		lookupTimeout: lt,
		log:           log.Named("upstream"),
	}
}

func newResty(base string, timeout time.Duration) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

/* ------------------------------------------------------------------ */
/* passport                                                            */
/* ------------------------------------------------------------------ */

// PracticeProfile fetches /api/v1/public/practices/{id}.
func (c *Client) PracticeProfile(ctx context.Context, id string) (*Practice, error) {
	var p Practice
	req := c.passport.R().SetContext(ctx).SetPathParam("id", id)
	if err := c.get(Passport, req, "/api/v1/public/practices/{id}", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// PracticeByCode looks a customer code up on passport.  The call has its
// own deadline and the payload must carry both id and name.
func (c *Client) PracticeByCode(ctx context.Context, code string) (*Practice, error) {
	if code == "" {
		return nil, ErrNoIdentifier
	}
	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	var p Practice
	req := c.passport.R().SetContext(ctx).SetQueryParam("customer_code", code)
	if err := c.get(Passport, req, "/api/v1/public/practice_by_customer_code", &p); err != nil {
		return nil, err
	}
	if p.ID == "" || p.Name == "" {
		return nil, fmt.Errorf("practice_by_customer_code %q: %w", code, ErrInvalidData)
	}
	return &p, nil
}

/* ------------------------------------------------------------------ */
/* portal                                                              */
/* ------------------------------------------------------------------ */

// Website fetches /api/website/{id}/0 with the daily bearer.
func (c *Client) Website(ctx context.Context, id, bearer string) (*Website, error) {
	var w Website
	req := c.portal.R().SetContext(ctx).SetAuthToken(bearer).SetPathParam("id", id)
	if err := c.get(Portal, req, "/api/website/{id}/0", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Blogs lists blogs.  An empty practiceID lists the global posts.
func (c *Client) Blogs(ctx context.Context, practiceID string) ([]Blog, error) {
	var out []Blog
	req := c.portal.R().SetContext(ctx)
	if practiceID != "" {
		req.SetQueryParam("practice_id", practiceID)
	}
	if err := c.get(Portal, req, "/api/blogs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Blog fetches one post, practice-scoped when practiceID is set.
func (c *Client) Blog(ctx context.Context, blogID, practiceID string) (*Blog, error) {
	var b Blog
	req := c.portal.R().SetContext(ctx).SetPathParam("id", blogID)
	if practiceID != "" {
		req.SetQueryParam("practice_id", practiceID)
	}
	if err := c.get(Portal, req, "/api/blogs/{id}", &b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		return nil, fmt.Errorf("blog %s: %w", blogID, ErrNotFound)
	}
	return &b, nil
}

/* ------------------------------------------------------------------ */
/* ocumail                                                             */
/* ------------------------------------------------------------------ */

// PracticeSettings fetches the key/value settings rows for a practice.
func (c *Client) PracticeSettings(ctx context.Context, id, bearer string) ([]Setting, error) {
	var out []Setting
	req := c.ocumail.R().SetContext(ctx).SetAuthToken(bearer).
		SetQueryParams(map[string]string{
			"setting_object_id":   id,
			"setting_object_type": "Practice",
		})
	if err := c.get(Ocumail, req, "/api/settings", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SectionCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(Ocumail, c.ocumail.R().SetContext(ctx), "/api/section_categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SectionCategory(ctx context.Context, id string) (*Category, error) {
	var cat Category
	req := c.ocumail.R().SetContext(ctx).SetPathParam("id", id)
	if err := c.get(Ocumail, req, "/api/section_categories/{id}", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (c *Client) SectionItems(ctx context.Context) ([]Item, error) {
	var out []Item
	if err := c.get(Ocumail, c.ocumail.R().SetContext(ctx), "/api/section_items", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ItemAttributes(ctx context.Context, itemID string) ([]Attribute, error) {
	var out []Attribute
	req := c.ocumail.R().SetContext(ctx).SetPathParam("id", itemID)
	if err := c.get(Ocumail, req, "/api/item_attributes/{id}", &out); err != nil {
		return nil, err
	}
	return out, nil
}

/* ------------------------------------------------------------------ */
/* shared                                                              */
/* ------------------------------------------------------------------ */

// get performs the request and decodes a 2xx body into dst.
func (c *Client) get(service string, req *resty.Request, path string, dst any) error {
	start := time.Now()
	resp, err := req.Get(path)
	took := time.Since(start)

	if err != nil {
		metrics.ObserveUpstream(service, "timeout", took)
		c.log.Warn("upstream unreachable",
			zap.String("service", service),
			zap.String("path", path),
			zap.Duration("took", took),
			zap.Error(err))
		return fmt.Errorf("%s %s: %w", service, path, errors.Join(ErrTimeout, err))
	}

	status := resp.StatusCode()
	switch {
	case status == http.StatusNotFound:
		metrics.ObserveUpstream(service, "not_found", took)
		return fmt.Errorf("%s %s: %w", service, path, ErrNotFound)
	case status < 200 || status > 299:
		metrics.ObserveUpstream(service, "error", took)
		ue := &UpstreamError{Service: service, Status: status, Message: errorMessage(resp)}
		c.log.Warn("upstream error",
			zap.String("service", service),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("message", ue.Message))
		return ue
	}

	if err := json.Unmarshal(resp.Body(), dst); err != nil {
		metrics.ObserveUpstream(service, "invalid", took)
		return fmt.Errorf("%s %s: %w: %v", service, path, ErrInvalidData, err)
	}
	metrics.ObserveUpstream(service, "ok", took)
	return nil
}

// errorMessage prefers the JSON "message" (or "error") field and falls
// back to the status text.
func errorMessage(resp *resty.Response) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(resp.Body(), &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return http.StatusText(resp.StatusCode())
}
