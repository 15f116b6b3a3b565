// cmd/web/main.go
//
// Lumina – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load configuration (.env → conf/global.yaml → LUMINA_* env, with
//     vault: references resolved when Vault is enabled).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Open the optional GeoLite2 database.
//
//  4. Build the customer-code resolver: built-in codes, YAML static codes,
//     the optional MySQL override table, and the optional Redis memo.
//
//  5. Build the upstream client and the settings aggregator.
//
//  6. Load the theme (disk override → embedded) and the site router.
//
//  7. Serve until SIGINT/SIGTERM, then drain for server.ShutdownGrace.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/config"
	"github.com/yanizio/lumina/internal/dailykey"
	"github.com/yanizio/lumina/internal/database"
	"github.com/yanizio/lumina/internal/logger"
	"github.com/yanizio/lumina/internal/practice"
	"github.com/yanizio/lumina/internal/requestinfo"
	"github.com/yanizio/lumina/internal/server"
	"github.com/yanizio/lumina/internal/settings"
	"github.com/yanizio/lumina/internal/site"
	"github.com/yanizio/lumina/internal/theme"
	"github.com/yanizio/lumina/internal/upstream"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, cfg.Log.Level, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	if err := run(ctx, cfg); err != nil {
		logOut.Fatalw("lumina stopped", "err", err)
	}
	logOut.Info("lumina stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config) error {
	lg := zap.L()

	//
	// ── 1.  Request enrichment ──────────────────────────────────────────
	//
	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		lg.Warn("geoip disabled", zap.String("path", cfg.Geo.DBPath), zap.Error(err))
	}
	defer requestinfo.CloseGeo()

	//
	// ── 2.  Customer-code resolver ──────────────────────────────────────
	//
	keys := dailykey.NewSource(nil)
	static := make(map[string]string, len(cfg.Resolver.StaticCodes))
	for code, id := range cfg.Resolver.StaticCodes {
		static[code] = id
	}
	if dsn := cfg.Resolver.OverrideDSN; dsn != "" {
		db, err := database.Open(ctx, dsn)
		if err != nil {
			return err
		}
		overrides, err := practice.LoadOverrides(ctx, db)
		db.Close()
		if err != nil {
			return err
		}
		for code, id := range overrides {
			static[code] = id
		}
		lg.Info("customer code overrides loaded", zap.Int("count", len(overrides)))
	}

	var store practice.Store
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			lg.Warn("redis unreachable, using in-memory memo", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			store = practice.NewRedisStore(rdb, cfg.Redis.Prefix)
		}
	}

	//
	// ── 3.  Upstream + aggregation ──────────────────────────────────────
	//
	client := upstream.New(upstream.Config{
		PassportURL:    cfg.Upstream.PassportURL,
		PortalURL:      cfg.Upstream.PortalURL,
		OcumailURL:     cfg.Upstream.OcumailURL,
		LookupTimeout:  cfg.Upstream.LookupTimeout,
		RequestTimeout: cfg.Upstream.RequestTimeout,
	}, lg)
	resolver := practice.NewResolver(client, practice.Options{
		Static: static,
		Store:  store,
		Keys:   keys,
		Logger: lg,
	})
	agg := settings.NewAggregator(client, keys, lg)

	//
	// ── 4.  Theme + router ──────────────────────────────────────────────
	//
	th, err := theme.Manager{Dir: filepath.Join(cfg.Paths.Root, "themes")}.Load(cfg.Theme.Name)
	if err != nil {
		return err
	}
	handler, err := site.NewRouter(site.Deps{
		Upstream:   client,
		Resolver:   resolver,
		Aggregator: agg,
		Theme:      th,
		PortalURL:  cfg.Upstream.PortalURL,
		S3URL:      cfg.Upstream.S3URL,
		OGImage:    cfg.Theme.DefaultOGImage,
		ForceHTTPS: cfg.HTTP.ForceHTTPS,
		Log:        lg,
	})
	if err != nil {
		return err
	}

	//
	// ── 5.  Serve ───────────────────────────────────────────────────────
	//
	return server.Run(ctx, server.New(cfg.HTTP.ListenAddr, handler), lg)
}
