package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestEnrichMintsRequestID(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/E007/blog", nil)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.8")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got == nil {
		t.Fatal("RequestInfo missing from context")
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("request id %q is not a uuid", got.ID)
	}
	if rec.Header().Get(HeaderRequestID) != got.ID {
		t.Fatal("response header does not echo the request id")
	}
	if got.PrimaryLang != "en-gb" {
		t.Fatalf("PrimaryLang = %q", got.PrimaryLang)
	}
	if got.Geo.IP.String() != "203.0.113.9" {
		t.Fatalf("client ip = %v", got.Geo.IP)
	}
}

func TestEnrichKeepsInboundID(t *testing.T) {
	in := uuid.NewString()
	var got string
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context()).ID
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, in)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != in {
		t.Fatalf("id = %q, want %q", got, in)
	}
}

func TestClientIPFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	if ip := clientIP(req); ip.String() != "198.51.100.4" {
		t.Fatalf("remote addr ip = %v", ip)
	}
	req.Header.Set("X-Real-Ip", "192.0.2.7")
	if ip := clientIP(req); ip.String() != "192.0.2.7" {
		t.Fatalf("x-real-ip = %v", ip)
	}
}

func TestInitGeoEmptyPath(t *testing.T) {
	if err := InitGeo(""); err != nil {
		t.Fatal(err)
	}
	if err := InitGeo("/nonexistent/GeoLite2-City.mmdb"); err == nil {
		t.Fatal("expected error for missing database")
	}
}
