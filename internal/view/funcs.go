// internal/view/funcs.go
//
// Template helpers.  Request helpers take *tenant.Context so the func map
// stays static and parsed sets can be cached.
package view

import (
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/tenant"
	"github.com/yanizio/lumina/internal/theme"
)

func buildFuncMap(th *theme.Theme, bucket string) template.FuncMap {
	fm := template.FuncMap{
		"asset": th.AssetFunc,
		"dict":  dict,
		"bannerURL": func(img string) string {
			return settings.BannerImageURL(bucket, img)
		},
		// Upstream HTML (blog bodies, about text, info-centre articles)
		// comes from the practice CMS and is rendered as-is.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"telLink":  telLink,
		"waLink":   waLink,
		"year":     func() int { return time.Now().Year() },
	}
	for k, v := range requestFuncMap() {
		fm[k] = v
	}
	return fm
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// telLink returns template.URL since html/template rejects the tel: scheme.
func telLink(tel string) template.URL {
	return template.URL("tel:" + strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, tel))
}

// waLink builds a wa.me link; WhatsApp wants digits only.
func waLink(tel string) string {
	return "https://wa.me/" + strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, tel)
}

// requestFuncMap exposes RequestInfo fields with short names.
func requestFuncMap() template.FuncMap {
	return template.FuncMap{
		"requestID": func(c *tenant.Context) string {
			if c == nil || c.Info == nil {
				return ""
			}
			return c.Info.ID
		},
		"country": func(c *tenant.Context) string {
			if c == nil || c.Info == nil {
				return ""
			}
			return c.Info.Geo.CountryISO
		},
		"device": func(c *tenant.Context) string {
			if c == nil || c.Info == nil {
				return ""
			}
			return c.Info.UA.Device
		},
		"isMobile": func(c *tenant.Context) bool {
			return c != nil && c.Info != nil && c.Info.UA.Mobile()
		},
		"isBot": func(c *tenant.Context) bool {
			return c != nil && c.Info != nil && c.Info.UA.IsBot
		},
	}
}
