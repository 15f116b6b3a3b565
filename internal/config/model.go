// internal/config/model.go
//
// Typed configuration model for Lumina.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   - optional `.env`                          dotenv values,
//   - `conf/global.yaml`                       primary static file,
//   - `LUMINA_`-prefixed environment overrides highest precedence.
//
// Any value whose string begins with `vault:` (`vault:mount/path#key`) is
// resolved through the Vault client *before* unmarshalling when
// `vault.enabled` is true, so the model never stores Vault URIs.
//
// Notes
// -----
//   - Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   - Durations are written as Go duration strings ("5s", "750ms").
//   - The `Paths` block is filled at runtime; YAML must not try to set it.
package config

import "time"

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
	PublicURL  string `koanf:"public_url"  validate:"omitempty,url"`
}

// Upstream holds base URLs and timeouts of the content services.
//
// LookupTimeout bounds the customer-code lookup only.  RequestTimeout
// bounds every call and defaults to 0 (no limit).
type Upstream struct {
	PassportURL    string        `koanf:"passport_url"    validate:"required,url"`
	PortalURL      string        `koanf:"portal_url"      validate:"required,url"`
	OcumailURL     string        `koanf:"ocumail_url"     validate:"required,url"`
	S3URL          string        `koanf:"s3_url"          validate:"required,url"`
	LookupTimeout  time.Duration `koanf:"lookup_timeout"  validate:"gte=0"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=0"`
}

// Resolver extends the built-in customer-code table.  OverrideDSN, when
// set, points at a MySQL database holding `customer_code_override`.  It
// is usually a vault: reference since it embeds credentials.
type Resolver struct {
	StaticCodes map[string]string `koanf:"static_codes"`
	OverrideDSN string            `koanf:"override_dsn" validate:"nosecretref"`
}

// Redis enables the shared resolution memo when Addr is non-empty.
type Redis struct {
	Addr     string `koanf:"addr"     validate:"omitempty,hostname_port"`
	Password string `koanf:"password" validate:"nosecretref"`
	DB       int    `koanf:"db"       validate:"gte=0"`
	Prefix   string `koanf:"prefix"`
}

// Vault toggles secret resolution for vault: references.
type Vault struct {
	Enabled  bool          `koanf:"enabled"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Geo points at an optional GeoLite2 City database.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

// Theme selects the template set and shared assets.
type Theme struct {
	Name           string `koanf:"name"             validate:"required"`
	DefaultOGImage string `koanf:"default_og_image" validate:"omitempty,url"`
}

// Log controls verbosity.
type Log struct {
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // LUMINA_ROOT or discovered parent
}

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Upstream Upstream `koanf:"upstream"`
	Resolver Resolver `koanf:"resolver"`
	Redis    Redis    `koanf:"redis"`
	Vault    Vault    `koanf:"vault"`
	Geo      Geo      `koanf:"geo"`
	Theme    Theme    `koanf:"theme"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"`
}
