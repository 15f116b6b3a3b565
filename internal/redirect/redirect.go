// internal/redirect/redirect.go
//
// Target computation for the booking and marketing redirect routes.
//
// Context
// -------
// Mail campaigns and booking widgets link to this site rather than to the
// portal directly.  Most links are forwarded unchanged to the portal; a
// few consult the practice profile first (website, custom rating URL).
// The HTTP side lives in components/redirect.
package redirect

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/upstream"
)

// PassThrough lists chi patterns forwarded verbatim to the portal.
var PassThrough = []string{
	"/new_booking/{practiceID}",
	"/practice_review/{practiceID}/{rating}/{appointment}",
	"/contact_lens_order/{practiceID}/{mail}",
	"/campaign_booking_request/{practiceID}/{campaign}/{patient}",
	"/campaign_social_media_redirect/{practiceID}/{campaign}/{patient}/{linkType}",
	"/social_media_redirect/{practiceID}/{mail}/{linkType}",
	"/marketing_info_item_redirect/{practiceID}/{campaign}/{item}",
	"/view_mail/{mail}",
	"/view_mail_link/{mail}",
	"/practice_review_link/{practiceID}/{rating}/{appointment}",
	"/appointment_request_reschedule/{practiceID}/{appointment}",
	"/{identifier}/new_booking",
}

// Profiles fetches passport practice records.
type Profiles interface {
	PracticeProfile(ctx context.Context, id string) (*upstream.Practice, error)
}

type Service struct {
	portal   string
	profiles Profiles
	log      *zap.Logger
}

// New returns a Service forwarding to portalURL
// (e.g. https://www.eyecareportal.com).
func New(portalURL string, profiles Profiles, log *zap.Logger) *Service {
	if log == nil {
		log = zap.L()
	}
	return &Service{
		portal:   strings.TrimRight(portalURL, "/"),
		profiles: profiles,
		log:      log.Named("redirect"),
	}
}

// Portal returns the portal URL for path (which must start with "/").
func (s *Service) Portal(path string) string { return s.portal + path }

// PracticeWebsite is the practice's own site, or its portal page when it
// has none.
func (s *Service) PracticeWebsite(ctx context.Context, practiceID string) string {
	if p, err := s.profiles.PracticeProfile(ctx, practiceID); err == nil && strings.TrimSpace(p.Website) != "" {
		return withScheme(strings.TrimSpace(p.Website))
	} else if err != nil {
		s.log.Warn("practice profile unavailable", zap.String("practice_id", practiceID), zap.Error(err))
	}
	return fmt.Sprintf("%s/practice/%s", s.portal, url.PathEscape(practiceID))
}

// Promo is promo/{practice}/{campaign} on the practice website.  It fails
// with upstream.ErrNotFound when the practice has no website.
func (s *Service) Promo(ctx context.Context, practiceID, campaign string) (string, error) {
	p, err := s.profiles.PracticeProfile(ctx, practiceID)
	if err != nil {
		return "", err
	}
	site := strings.TrimSpace(p.Website)
	if site == "" {
		return "", fmt.Errorf("practice %s has no website: %w", practiceID, upstream.ErrNotFound)
	}
	base, err := url.Parse(strings.TrimRight(withScheme(site), "/") + "/")
	if err != nil {
		return "", fmt.Errorf("practice %s website %q: %w", practiceID, site, upstream.ErrInvalidData)
	}
	ref := &url.URL{Path: "promo/" + practiceID + "/" + campaign}
	return base.ResolveReference(ref).String(), nil
}

// ReviewLink prefers the practice's custom rating URL and falls back to
// the portal review page, including on lookup failure.
func (s *Service) ReviewLink(ctx context.Context, practiceID, rating, appointment, source string) string {
	p, err := s.profiles.PracticeProfile(ctx, practiceID)
	if err == nil && strings.TrimSpace(p.CustomRatingURL) != "" {
		return p.CustomRatingURL
	}
	if err != nil {
		s.log.Warn("practice profile unavailable", zap.String("practice_id", practiceID), zap.Error(err))
	}
	return fmt.Sprintf("%s/practice_review/%s/%s/%s/%s", s.portal, practiceID, rating, appointment, source)
}

// RescheduleTarget is the local reschedule page for an appointment.
func RescheduleTarget(practiceID, appointment string) string {
	return "/appointment_request_reschedule/" + url.PathEscape(practiceID) + "/" + url.PathEscape(appointment)
}

var hasScheme = regexp.MustCompile(`^https?://`)

func withScheme(u string) string {
	if hasScheme.MatchString(u) {
		return u
	}
	return "https://" + u
}
