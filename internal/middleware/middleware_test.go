package middleware

import (
	"bytes"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/lumina/internal/requestinfo"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
})

func TestForceHTTPS(t *testing.T) {
	h := ForceHTTPS(true)(ok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/E007?x=1", nil))
	if rec.Code != http.StatusPermanentRedirect || rec.Header().Get("Location") != "https://example.com/E007?x=1" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	cases := []*http.Request{
		httptest.NewRequest(http.MethodGet, "http://localhost:8080/E007", nil),
		httptest.NewRequest(http.MethodGet, "http://example.com/healthz", nil),
	}
	proxied := httptest.NewRequest(http.MethodGet, "http://example.com/E007", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	secure := httptest.NewRequest(http.MethodGet, "https://example.com/E007", nil)
	secure.TLS = &tls.ConnectionState{}
	cases = append(cases, proxied, secure)

	for _, req := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status %d, want pass-through", req.URL, rec.Code)
		}
	}
}

func TestForceHTTPSDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	ForceHTTPS(false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	Security(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, h := range []string{"Strict-Transport-Security", "Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("%s missing", h)
		}
	}
	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "img-src 'self' data: https:") {
		t.Fatal("CSP must allow https images")
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := requestinfo.Enrich(AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write(bytes.Repeat([]byte("x"), 10))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/71/settings", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries = %d", len(entries))
	}
	e := entries[0]
	fields := e.ContextMap()
	if e.Level != zapcore.WarnLevel || fields["status"] != int64(502) || fields["bytes"] != int64(10) {
		t.Fatalf("entry = %v %v", e.Level, fields)
	}
	if fields["request_id"] == "" || fields["path"] != "/api/71/settings" {
		t.Fatalf("fields = %v", fields)
	}
}
