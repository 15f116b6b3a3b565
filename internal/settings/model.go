// Package settings builds the per-tenant SiteSettings view model from the
// three upstream sources.  JSON tags are the keys templates and the
// /api/{identifier}/settings endpoint expose.
package settings

import "github.com/yanizio/lumina/internal/hours"

// Fallback assets used when the practice has not uploaded its own.
const (
	DefaultPrimaryColor = "orange"
	DefaultLogoDark     = "https://s3.eu-west-2.amazonaws.com/ocumailuserdata/1689179837_67_logo_dark_wide.png"
	DefaultLogoLight    = "https://s3.eu-west-2.amazonaws.com/ocumailuserdata/1689179856_67_logo_light_wide.png"
	DefaultAboutImage   = "https://s3.eu-west-2.amazonaws.com/ocumailuserdata/1606406649_67_about_banner.png"
	DefaultAvatar       = "/images/default-avatar.jpg"
)

// SiteSettings is the merged, default-filled record one tenant renders
// from.  Collections are never nil.
type SiteSettings struct {
	PracticeID   string        `json:"practiceId"`
	PrimaryColor string        `json:"primaryColor"`
	WorkingHours []hours.Entry `json:"working_hours"`
	Counters     Counters      `json:"counterSettings"`

	ShowCountersPanel bool `json:"show_counters_panel"`
	ShowCustomPanel   bool `json:"show_custom_panel"`
	ShowSocialsPanel  bool `json:"show_socials_panel"`
	ShowTeamsPanel    bool `json:"show_teams_panel"`
	ShowYoutubePanel  bool `json:"show_youtube_panel"`

	HideLogo       bool   `json:"hide_logo"`
	AddressSetting string `json:"address_setting"`
	LogoDark       string `json:"logo_dark"`
	LogoLight      string `json:"logo_light"`

	AboutText          string            `json:"aboutText"`
	AboutImage         string            `json:"aboutImg"`
	About              map[string]any    `json:"about"`
	TeamMembers        []TeamMember      `json:"teamMembers"`
	Members            []map[string]any  `json:"member"`
	Services           []Service         `json:"services"`
	FeaturedServices   []FeaturedService `json:"featured_services"`
	ServiceDescription map[string]any    `json:"service_description"`
	Banners            []Banner          `json:"banners"`
	Brands             []Brand           `json:"brands"`
	Reviews            []Review          `json:"reviews"`
	StatItems          []StatItem        `json:"statitems"`

	Name                     string `json:"name"`
	ShortName                string `json:"short_name"`
	Address1                 string `json:"address_1"`
	Address2                 string `json:"address_2"`
	City                     string `json:"city"`
	State                    string `json:"state"`
	Zip                      string `json:"zip"`
	Tel                      string `json:"tel"`
	Fax                      string `json:"fax"`
	Email                    string `json:"email"`
	Website                  string `json:"website"`
	FacebookURL              string `json:"facebook_url"`
	InstagramURL             string `json:"instagram_url"`
	LinkedInURL              string `json:"linkedin_url"`
	PinterestURL             string `json:"pinterest_url"`
	TikTokURL                string `json:"tiktok_url"`
	WhatsAppTel              string `json:"whatsapp_tel"`
	GoogleBusinessProfileURL string `json:"google_business_profile_url"`
	CustomRatingURL          string `json:"custom_rating_url"`
	Hours                    string `json:"hours"`
}

type Counters struct {
	Brands     int `json:"brands"`
	Frames     int `json:"frames"`
	Customers  int `json:"customers"`
	Experience int `json:"experience"`
}

type Banner struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	TitleFontSize   string `json:"titleFontSize"`
	Text            string `json:"text"`
	TextFontSize    string `json:"textFontSize"`
	TitleGoogleFont string `json:"titleGoogleFont"`
	TextGoogleFont  string `json:"textGoogleFont"`
	BannerImg       string `json:"bannerImg"`
	ButtonText      string `json:"buttonText"`
	ButtonLink      string `json:"buttonLink"`
}

type Service struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	IconDescription string `json:"iconDescription"`
	IconID          string `json:"icon_id"`
	ImageName       string `json:"image_name"`
}

// FeaturedService keeps the upstream key names; templates for the
// featured strip were written against them.
type FeaturedService struct {
	ID              string `json:"id"`
	ServiceTitle    string `json:"service_title"`
	LongDescription string `json:"long_description"`
	IconDesc        string `json:"icon_desc"`
	IconID          string `json:"icon_id"`
	ImageName       string `json:"image_name"`
}

type TeamMember struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Img           string `json:"img"`
}

type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Img         string `json:"img"`
	BrandURL    string `json:"brand_url"`
	OrderNumber string `json:"order_number"`
	Show        bool   `json:"show"`
}

type Review struct {
	ID             string `json:"id"`
	PatientName    string `json:"patient_name"`
	ReviewComments string `json:"review_comments"`
	Img            string `json:"img"`
	Rating         string `json:"rating"`
}

type StatItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Defaults returns a renderable record for practiceID with every field at
// its default.
func Defaults(practiceID string) SiteSettings {
	return SiteSettings{
		PracticeID:         practiceID,
		PrimaryColor:       DefaultPrimaryColor,
		WorkingHours:       []hours.Entry{},
		ShowCountersPanel:  true,
		ShowCustomPanel:    true,
		ShowSocialsPanel:   true,
		ShowTeamsPanel:     true,
		ShowYoutubePanel:   true,
		LogoDark:           DefaultLogoDark,
		LogoLight:          DefaultLogoLight,
		AboutImage:         DefaultAboutImage,
		About:              map[string]any{},
		TeamMembers:        []TeamMember{},
		Members:            []map[string]any{},
		Services:           []Service{},
		FeaturedServices:   []FeaturedService{},
		ServiceDescription: map[string]any{},
		Banners:            []Banner{},
		Brands:             []Brand{},
		Reviews:            []Review{},
		StatItems:          []StatItem{},
	}
}

// DisplayName is the practice name, falling back to the short name.
func (s SiteSettings) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ShortName
}
