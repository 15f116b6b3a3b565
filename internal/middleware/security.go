// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects the usual hardening headers on every response:
//
//   • Strict-Transport-Security
//   • Content-Security-Policy
//   • X-Frame-Options
//   • X-Content-Type-Options
//   • Referrer-Policy
//   • Permissions-Policy
//
// Notes
// -----
// • Headers are set before next.ServeHTTP; a handler may still overwrite
//   them, which the redirect pages rely on.
// • The CSP admits https images, fonts, and frames since banners live on
//   S3, fonts come from Google, and the contact panel embeds a map.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts = "max-age=63072000; includeSubDomains"
		csp  = "default-src 'self'; img-src 'self' data: https:; " +
			"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
			"font-src 'self' https://fonts.gstatic.com; frame-src https:; " +
			"object-src 'none'; base-uri 'self'; frame-ancestors 'self'"
		xfo   = "SAMEORIGIN"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
		perm  = "geolocation=(), microphone=(), camera=()"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Strict-Transport-Security", hsts)
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Frame-Options", xfo)
		h.Set("X-Content-Type-Options", nosn)
		h.Set("Referrer-Policy", refer)
		h.Set("Permissions-Policy", perm)
		next.ServeHTTP(w, r)
	})
}
