// internal/upstream/types.go
//
// Wire shapes of the upstream payloads.  Field names follow the upstream
// JSON verbatim; the view model with canonical names lives in
// internal/settings.  Unknown fields are ignored.
package upstream

// Practice is the passport practice record, returned both by id and by
// customer code.
type Practice struct {
	ID                       Text   `json:"id"`
	Name                     string `json:"name"`
	ShortName                string `json:"short_name"`
	CustomerCode             string `json:"customer_code"`
	Address1                 string `json:"address_1"`
	Address2                 string `json:"address_2"`
	City                     string `json:"city"`
	State                    string `json:"state"`
	Zip                      Text   `json:"zip"`
	Tel                      Text   `json:"tel"`
	Fax                      Text   `json:"fax"`
	Email                    string `json:"email"`
	Website                  string `json:"website"`
	FacebookURL              string `json:"facebook_url"`
	InstagramURL             string `json:"instagram_url"`
	LinkedInURL              string `json:"linkedin_url"`
	PinterestURL             string `json:"pinterest_url"`
	TikTokURL                string `json:"tiktok_url"`
	WhatsAppTel              Text   `json:"whatsapp_tel"`
	GoogleBusinessProfileURL string `json:"google_business_profile_url"`
	CustomRatingURL          string `json:"custom_rating_url"`
	Hours                    string `json:"hours"`
}

// Website is the eyecareportal content payload for one practice.
type Website struct {
	PracticeName       string           `json:"practice_name"`
	PracticeWebsite    *PanelFlags      `json:"practice_website"`
	About              Object           `json:"about"`
	Banners            []Banner         `json:"banners"`
	Services           []Service        `json:"services"`
	FeaturedServices   []Service        `json:"featured_services"`
	ServiceDescription Object           `json:"service_description"`
	Team               []TeamMember     `json:"team"`
	Member             []map[string]any `json:"member"`
	Brands             []Brand          `json:"brands"`
	Reviews            []Review         `json:"reviews"`
	StatItems          []StatItem       `json:"statitems"`
}

// PanelFlags are the per-site section toggles.  Pointers distinguish
// "false" from "absent".
type PanelFlags struct {
	ShowCountersPanel *bool `json:"show_counters_panel"`
	ShowCustomPanel   *bool `json:"show_custom_panel"`
	ShowSocialsPanel  *bool `json:"show_socials_panel"`
	ShowTeamsPanel    *bool `json:"show_teams_panel"`
	ShowYoutubePanel  *bool `json:"show_youtube_panel"`
}

type Banner struct {
	ID                    Text   `json:"id"`
	BannerTitle           string `json:"banner_title"`
	BannerTitleFontSize   Text   `json:"banner_title_font_size"`
	BannerText            string `json:"banner_text"`
	BannerTextFontSize    Text   `json:"banner_text_font_size"`
	BannerTitleGoogleFont string `json:"banner_title_google_font"`
	BannerTextGoogleFont  string `json:"banner_text_google_font"`
	Img                   string `json:"img"`
	ButtonText            string `json:"button_text"`
	ButtonLink            string `json:"button_link"`
}

// Service doubles as the featured-service shape; some payloads use
// title/description instead of service_title/long_description.
type Service struct {
	ID              Text   `json:"id"`
	ServiceTitle    string `json:"service_title"`
	Title           string `json:"title"`
	LongDescription string `json:"long_description"`
	Description     string `json:"description"`
	IconDesc        string `json:"icon_desc"`
	IconID          Text   `json:"icon_id"`
	ImageName       string `json:"image_name"`
}

type TeamMember struct {
	ID            Text   `json:"id"`
	Name          string `json:"name"`
	Qualification string `json:"qualification"`
	Img           string `json:"img"`
}

type Brand struct {
	ID          Text   `json:"id"`
	Name        string `json:"name"`
	Img         string `json:"img"`
	BrandURL    string `json:"brand_url"`
	OrderNumber Text   `json:"order_number"`
	Show        *bool  `json:"show"`
}

type Review struct {
	ID             Text   `json:"id"`
	PatientName    string `json:"patient_name"`
	ReviewComments string `json:"review_comments"`
	Img            string `json:"img"`
	Rating         Text   `json:"rating"`
}

type StatItem struct {
	Label string `json:"label"`
	Value Text   `json:"value"`
}

// Setting is one ocumail key/value row.
type Setting struct {
	Name  string `json:"setting_name"`
	Value Text   `json:"setting_value"`
}

// Blog is an eyecareportal blog post.  PracticeID is empty for global
// posts.
type Blog struct {
	ID             Text   `json:"id"`
	PracticeID     Text   `json:"practice_id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Date           string `json:"date"`
	Show           *bool  `json:"show"`
	HeaderImage    string `json:"header_image"`
	ThumbnailImage string `json:"thumbnail_image"`
	JPG            string `json:"jpg"`
}

// Category is an ocumail info-centre section category.
type Category struct {
	ID              Text   `json:"id"`
	Name            string `json:"name"`
	OrderBy         Text   `json:"orderby"`
	ThumbnailImgURL string `json:"thumbnail_img_url"`
	BannerImgURL    string `json:"banner_img_url"`
}

// Item is an info-centre article stub.
type Item struct {
	ID                Text   `json:"id"`
	Name              string `json:"name"`
	SectionCategoryID Text   `json:"section_category_id"`
	Enabled           bool   `json:"enabled"`
	ThumbnailImgURL   string `json:"thumbnail_img_url"`
	ImgURL            string `json:"imgurl"`
	Body              string `json:"body"`
}

// Attribute is one named block of an info-centre article.
type Attribute struct {
	ID   Text   `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
}
