// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `LUMINA_`, where `__` maps to "."
     (e.g., `LUMINA_UPSTREAM__LOOKUP_TIMEOUT → upstream.lookup_timeout`).

When `vault.enabled` is true every string leaf of the form
`vault:mount/path#key` is swapped for the secret before unmarshal.  The
tree is then unmarshalled, validated, enriched with the runtime root path,
and cached in an `atomic.Pointer` for lock-free reads.

Instrumentation
---------------
  - DEBUG: root discovery, YAML read.
  - ERROR: YAML parse, env overlay, secret resolution, unmarshal, validation.
  - INFO:  final "config loaded" with key highlights.
  - Logs use the global sugared logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/vault"
)

const (
	envPrefix = "LUMINA_"
	vaultRef  = "vault:"
)

var current atomic.Pointer[Config]

// SecretFunc resolves one vault: reference (without the prefix).
type SecretFunc func(ctx context.Context, ref string) (string, error)

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves LUMINA_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the executable's parent for a bin/ layout.
func rootDir() string {
	if r := os.Getenv("LUMINA_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, resolves Vault references when
// enabled, validates, and caches Config.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, rootDir(), nil)
}

// LoadFrom is Load with an explicit root.  A nil secrets func builds a
// Vault client on demand.
func LoadFrom(ctx context.Context, root string, secrets SecretFunc) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	if k.Bool("vault.enabled") {
		if secrets == nil {
			cli, err := vault.New(ctx, zap.S().Infof)
			if err != nil {
				zap.S().Errorw("vault client init failed", "err", err)
				return nil, err
			}
			ttl := k.Duration("vault.cache_ttl")
			secrets = func(ctx context.Context, ref string) (string, error) {
				return cli.ResolveRef(ctx, ref, ttl)
			}
		}
		if err := resolveSecrets(ctx, k, secrets); err != nil {
			zap.S().Errorw("config secret resolution failed", "err", err)
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"redis", cfg.Redis.Addr != "",
		"vault", cfg.Vault.Enabled,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// envKey maps LUMINA_HTTP__LISTEN_ADDR → http.listen_addr.
func envKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(strings.ReplaceAll(s, "__", "."))
}

// resolveSecrets replaces every vault: string leaf in k.
func resolveSecrets(ctx context.Context, k *koanf.Koanf, secrets SecretFunc) error {
	for path, val := range k.All() {
		s, ok := val.(string)
		if !ok || !strings.HasPrefix(s, vaultRef) {
			continue
		}
		secret, err := secrets(ctx, strings.TrimPrefix(s, vaultRef))
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		if err := k.Set(path, secret); err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config { return current.Load() }

func Reload(ctx context.Context) error {
	_, err := Load(ctx)
	return err
}
