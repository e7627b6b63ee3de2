// cmd/web/main.go
//
// Atrium – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (system-wide file → conf/.env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load typed config (YAML + ATRIUM_ env overlay, vault: refs resolved).
//
//  4. Register form definitions and install the CSRF key.
//
//  5. Optional services: GeoIP database, activity-log DB (migrated at boot).
//
//  6. Build the Auth API client, token verifier, and session manager.
//
//  7. Assemble the chi router: request enrichment → security headers →
//     edge guard, then mount every registered component plus /metrics
//     and /healthz.
//
//  8. Serve with hardened timeouts, optionally behind ForceHTTPS.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/yanizio/atrium/internal/activity"
	"github.com/yanizio/atrium/internal/authapi"
	"github.com/yanizio/atrium/internal/component"
	"github.com/yanizio/atrium/internal/config"
	"github.com/yanizio/atrium/internal/database"
	"github.com/yanizio/atrium/internal/form"
	"github.com/yanizio/atrium/internal/guard"
	"github.com/yanizio/atrium/internal/logger"
	"github.com/yanizio/atrium/internal/middleware"
	"github.com/yanizio/atrium/internal/requestinfo"
	"github.com/yanizio/atrium/internal/server"
	"github.com/yanizio/atrium/internal/session"
	"github.com/yanizio/atrium/internal/view"

	_ "github.com/yanizio/atrium/components/auth"
	_ "github.com/yanizio/atrium/components/dashboard"
	_ "github.com/yanizio/atrium/components/home"
)

const serverEnvPath = "/usr/local/etc/atrium/global.env"

// loginRate bounds credential submissions per client IP.
const (
	loginRate  = rate.Limit(1) // one attempt per second sustained
	loginBurst = 5
)

// loadEnv prefers the system-wide env file; on dev it falls back to
// conf/.env via the config loader, so a plain .env works too.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Views, forms, CSRF ──────────────────────────────────────────
	//
	view.SetRoot(cfg.Paths.Root)
	if err := form.RegisterForms(cfg.Paths.Root); err != nil {
		logOut.Fatalf("register forms: %v", err)
	}
	form.SetKey(cfg.Session.CSRFKey)

	//
	// ── 3.  Optional services: GeoIP, activity DB ───────────────────────
	//
	if cfg.Geo.CityDB != "" {
		if err := requestinfo.InitGeo(cfg.Geo.CityDB); err != nil {
			logOut.Warnf("geoip unavailable: %v", err)
		}
	}

	var activityRepo *activity.Repository
	if dsn := cfg.Database.ActivityDSN; dsn != "" {
		logOut.Info("connecting to activity DB …")
		db, err := database.Open(dsn)
		if err != nil {
			logOut.Fatalf("connect activity DB: %v", err)
		}
		defer db.Close()
		activityRepo = activity.NewRepository(db)
		if err := activityRepo.Migrate(context.Background()); err != nil {
			logOut.Fatalf("migrate activity DB: %v", err)
		}
		logOut.Info("activity DB online")
	} else {
		logOut.Info("activity DB not configured, sign-in history disabled")
	}

	//
	// ── 4.  Auth API client, verifier, sessions ─────────────────────────
	//
	apiClient := authapi.New(cfg.AuthAPI.BaseURL, cfg.AuthAPI.Timeout)
	verifier := guard.NewVerifier(apiClient)
	mem := session.NewMemory(cfg.Session.TTL)
	sessions := session.NewManager(apiClient, verifier, mem, activityRepo)

	compCtx := &component.Context{
		Config:       cfg,
		Sessions:     sessions,
		Verifier:     verifier,
		Activity:     activityRepo,
		LoginLimiter: middleware.NewRateLimiter(loginRate, loginBurst),
	}

	//
	// ── 5.  Router ──────────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)
	r.Use(guard.Middleware(verifier))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.Dir(cfg.Paths.Root+"/static"))))

	for _, c := range component.All() {
		mount := "/" + c.Name()
		if c.Name() == "home" {
			mount = "/"
		}
		r.Mount(mount, c.Routes(compCtx))
		logOut.Infof("mounted component %q at %s", c.Name(), mount)
	}

	//
	// ── 6.  Serve ───────────────────────────────────────────────────────
	//
	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infof("listening on %s", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		zap.L().Fatal("http server", zap.Error(err))
	}
}
