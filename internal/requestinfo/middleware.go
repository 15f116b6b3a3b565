// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
Enrich sits at the top of the chain, before tenant resolution.  For every
request it:

  1. Reuses an inbound X-Request-ID or mints a UUID and echoes it back.
  2. Parses the User-Agent header and Accept-Language list.
  3. Extracts the left-most client IP from X-Forwarded-For or X-Real-IP,
     falling back to `r.RemoteAddr`.
  4. Performs a GeoLite2 lookup when a database is loaded.

Instrumentation
---------------
At debug level each request logs ip, country, device, bot flag, and path.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/ua"
)

// HeaderRequestID is read from the request and set on the response.
const HeaderRequestID = "X-Request-ID"

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)

		info := &RequestInfo{
			ID:          id,
			UA:          ua.Parse(r.UserAgent()),
			Geo:         lookupGeo(clientIP(r)),
			PrimaryLang: primaryLang(r.Header.Get("Accept-Language")),
			URL:         r.URL,
			Timestamp:   time.Now().UTC(),
		}

		zap.S().Debugw("request info",
			"request_id", id,
			"ip", info.Geo.IP,
			"country", info.Geo.CountryISO,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
			"path", r.URL.Path,
		)

		next.ServeHTTP(w, r.WithContext(WithInfo(r.Context(), info)))
	})
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
