package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yanizio/lumina/internal/hours"
	"github.com/yanizio/lumina/internal/upstream"
)

// Setting names read from the ocumail key/value list.
const (
	settingPrimaryColor = "PrimaryColor"
	settingAddress1     = "Address1"
	settingHideLogo     = "HidePracticeLogoOnEyecarePortal"

	statBrands = "Number of Brands"
)

// counterUnit scales item counts into the "frames" and "customers" figures.
const counterUnit = 500

// BannerImageURL turns a banner img value into a fetchable URL.  Values
// starting with "http" are used as-is; anything else is a key in the
// ocumail bucket.  An empty img stays empty.
func BannerImageURL(bucket, img string) string {
	if img == "" || strings.HasPrefix(img, "http") {
		return img
	}
	return strings.TrimRight(bucket, "/") + "/" + strings.TrimLeft(img, "/")
}

// applyProfile copies the passport record onto s.
func applyProfile(s *SiteSettings, p *upstream.Practice) {
	s.Name = p.Name
	s.ShortName = p.ShortName
	s.Address1 = p.Address1
	s.Address2 = p.Address2
	s.City = p.City
	s.State = p.State
	s.Zip = p.Zip.String()
	s.Tel = p.Tel.String()
	s.Fax = p.Fax.String()
	s.Email = p.Email
	s.Website = p.Website
	s.FacebookURL = p.FacebookURL
	s.InstagramURL = p.InstagramURL
	s.LinkedInURL = p.LinkedInURL
	s.PinterestURL = p.PinterestURL
	s.TikTokURL = p.TikTokURL
	s.WhatsAppTel = p.WhatsAppTel.String()
	s.GoogleBusinessProfileURL = p.GoogleBusinessProfileURL
	s.CustomRatingURL = p.CustomRatingURL
	s.Hours = p.Hours
	s.WorkingHours = hours.Parse(p.Hours)
}

// applySettings reads the ocumail key/value rows.
func applySettings(s *SiteSettings, rows []upstream.Setting) {
	for _, r := range rows {
		v := r.Value.String()
		switch r.Name {
		case settingPrimaryColor:
			if v != "" {
				s.PrimaryColor = v
			}
		case settingAddress1:
			s.AddressSetting = v
		case settingHideLogo:
			s.HideLogo = v == "t"
		}
	}
}

// applyWebsite maps the portal payload onto s, renaming nested keys to
// the view-model names.  Banner images are kept verbatim; BannerImageURL
// is applied when rendering.
func applyWebsite(s *SiteSettings, w *upstream.Website) {
	if f := w.PracticeWebsite; f != nil {
		s.ShowCountersPanel = flag(f.ShowCountersPanel)
		s.ShowCustomPanel = flag(f.ShowCustomPanel)
		s.ShowSocialsPanel = flag(f.ShowSocialsPanel)
		s.ShowTeamsPanel = flag(f.ShowTeamsPanel)
		s.ShowYoutubePanel = flag(f.ShowYoutubePanel)
	}

	if w.About != nil {
		s.About = w.About
		s.AboutText = str(w.About["body"])
		if img := str(w.About["img"]); img != "" {
			s.AboutImage = img
		}
		if v := str(w.About["logo_dark"]); v != "" {
			s.LogoDark = v
		}
		if v := str(w.About["logo_light"]); v != "" {
			s.LogoLight = v
		}
	}
	if w.ServiceDescription != nil {
		s.ServiceDescription = w.ServiceDescription
	}
	if w.Member != nil {
		s.Members = w.Member
	}
	if s.Name == "" && s.ShortName == "" {
		s.ShortName = w.PracticeName
	}

	for _, b := range w.Banners {
		s.Banners = append(s.Banners, Banner{
			ID:              b.ID.String(),
			Title:           b.BannerTitle,
			TitleFontSize:   b.BannerTitleFontSize.String(),
			Text:            b.BannerText,
			TextFontSize:    b.BannerTextFontSize.String(),
			TitleGoogleFont: b.BannerTitleGoogleFont,
			TextGoogleFont:  b.BannerTextGoogleFont,
			BannerImg:       b.Img,
			ButtonText:      b.ButtonText,
			ButtonLink:      b.ButtonLink,
		})
	}

	for _, sv := range w.Services {
		s.Services = append(s.Services, Service{
			ID:              sv.ID.String(),
			Title:           sv.ServiceTitle,
			Description:     sv.LongDescription,
			IconDescription: sv.IconDesc,
			IconID:          sv.IconID.String(),
			ImageName:       sv.ImageName,
		})
	}

	featured := w.FeaturedServices
	if len(featured) == 0 {
		featured = w.Services
	}
	for _, sv := range featured {
		s.FeaturedServices = append(s.FeaturedServices, FeaturedService{
			ID:              sv.ID.String(),
			ServiceTitle:    firstNonEmpty(sv.ServiceTitle, sv.Title),
			LongDescription: firstNonEmpty(sv.LongDescription, sv.Description),
			IconDesc:        sv.IconDesc,
			IconID:          sv.IconID.String(),
			ImageName:       sv.ImageName,
		})
	}

	for _, m := range w.Team {
		s.TeamMembers = append(s.TeamMembers, TeamMember{
			ID:            m.ID.String(),
			Name:          firstNonEmpty(m.Name, "Team Member"),
			Qualification: firstNonEmpty(m.Qualification, "Eye Care Professional"),
			Img:           firstNonEmpty(m.Img, DefaultAvatar),
		})
	}

	for _, b := range w.Brands {
		s.Brands = append(s.Brands, Brand{
			ID:          b.ID.String(),
			Name:        b.Name,
			Img:         b.Img,
			BrandURL:    b.BrandURL,
			OrderNumber: b.OrderNumber.String(),
			Show:        flag(b.Show),
		})
	}

	for _, r := range w.Reviews {
		s.Reviews = append(s.Reviews, Review{
			ID:             r.ID.String(),
			PatientName:    r.PatientName,
			ReviewComments: r.ReviewComments,
			Img:            r.Img,
			Rating:         r.Rating.String(),
		})
	}

	for _, st := range w.StatItems {
		s.StatItems = append(s.StatItems, StatItem{Label: st.Label, Value: st.Value.String()})
	}

	s.Counters = Counters{
		Brands:     statValue(w.StatItems, statBrands),
		Frames:     len(w.FeaturedServices) * counterUnit,
		Customers:  len(w.Reviews) * counterUnit,
		Experience: experienceYears(s.PracticeID),
	}
}

// experienceYears is a stable 5..24 figure derived from the practice id.
func experienceYears(practiceID string) int {
	n, err := strconv.Atoi(practiceID)
	if err != nil || n < 0 {
		var sum int
		for _, c := range practiceID {
			sum += int(c)
		}
		n = sum
	}
	return 5 + n%20
}

func statValue(items []upstream.StatItem, label string) int {
	for _, st := range items {
		if st.Label == label {
			return st.Value.Int()
		}
	}
	return 0
}

// flag reads an optional toggle; absent means on.
func flag(b *bool) bool { return b == nil || *b }

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
