package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testYAML = `
http:
  listen_addr: ":8080"
upstream:
  passport_url: "https://passport.example.com"
  portal_url: "https://portal.example.com"
  ocumail_url: "https://ocumail.example.com"
  s3_url: "https://s3.example.com/bucket/"
  lookup_timeout: "5s"
resolver:
  static_codes:
    X001: "900"
  override_dsn: "vault:secret/lumina/db#dsn"
vault:
  enabled: true
theme:
  name: "eyecare"
log:
  level: "info"
`

// writeRoot lays out <tmp>/conf/global.yaml and returns <tmp>.
func writeRoot(t *testing.T, yaml string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "global.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func fakeSecrets(vals map[string]string) SecretFunc {
	return func(_ context.Context, ref string) (string, error) {
		if v, ok := vals[ref]; ok {
			return v, nil
		}
		return "", errors.New("no such secret " + ref)
	}
}

func TestLoadFromResolvesSecrets(t *testing.T) {
	root := writeRoot(t, testYAML)
	secrets := fakeSecrets(map[string]string{"secret/lumina/db#dsn": "u:p@tcp(db:3306)/lumina"})

	cfg, err := LoadFrom(context.Background(), root, secrets)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Resolver.OverrideDSN != "u:p@tcp(db:3306)/lumina" {
		t.Fatalf("OverrideDSN = %q", cfg.Resolver.OverrideDSN)
	}
	if cfg.Upstream.LookupTimeout != 5*time.Second {
		t.Fatalf("LookupTimeout = %v", cfg.Upstream.LookupTimeout)
	}
	if cfg.Resolver.StaticCodes["x001"] != "900" && cfg.Resolver.StaticCodes["X001"] != "900" {
		t.Fatalf("static codes = %v", cfg.Resolver.StaticCodes)
	}
	if cfg.Paths.Root != root {
		t.Fatalf("Paths.Root = %q", cfg.Paths.Root)
	}
	if Get() != cfg {
		t.Fatal("Get() does not return the freshly loaded config")
	}
}

func TestLoadFromEnvOverride(t *testing.T) {
	root := writeRoot(t, testYAML)
	t.Setenv("LUMINA_HTTP__LISTEN_ADDR", ":9191")
	t.Setenv("LUMINA_UPSTREAM__LOOKUP_TIMEOUT", "750ms")

	cfg, err := LoadFrom(context.Background(), root, fakeSecrets(map[string]string{"secret/lumina/db#dsn": "dsn"}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":9191" {
		t.Fatalf("ListenAddr = %q", cfg.HTTP.ListenAddr)
	}
	if cfg.Upstream.LookupTimeout != 750*time.Millisecond {
		t.Fatalf("LookupTimeout = %v", cfg.Upstream.LookupTimeout)
	}
}

func TestLoadFromSecretFailure(t *testing.T) {
	root := writeRoot(t, testYAML)
	_, err := LoadFrom(context.Background(), root, fakeSecrets(nil))
	if err == nil || !strings.Contains(err.Error(), "resolver.override_dsn") {
		t.Fatalf("expected secret error naming the key, got %v", err)
	}
}

func TestUnresolvedSecretRejected(t *testing.T) {
	yaml := strings.Replace(testYAML, "enabled: true", "enabled: false", 1)
	root := writeRoot(t, yaml)
	if _, err := LoadFrom(context.Background(), root, nil); err == nil {
		t.Fatal("vault: reference with Vault disabled must fail validation")
	}
}

func TestMissingUpstreamFailsValidation(t *testing.T) {
	yaml := strings.Replace(testYAML, `  s3_url: "https://s3.example.com/bucket/"`+"\n", "", 1)
	root := writeRoot(t, yaml)
	_, err := LoadFrom(context.Background(), root, fakeSecrets(map[string]string{"secret/lumina/db#dsn": "dsn"}))
	if err == nil {
		t.Fatal("missing s3_url must fail validation")
	}
}

func TestEnvKey(t *testing.T) {
	cases := map[string]string{
		"LUMINA_HTTP__LISTEN_ADDR":      "http.listen_addr",
		"LUMINA_UPSTREAM__S3_URL":       "upstream.s3_url",
		"LUMINA_RESOLVER__STATIC_CODES": "resolver.static_codes",
	}
	for in, want := range cases {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
