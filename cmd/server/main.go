// Command server runs the TireTrack control plane: the JSON API under /v1,
// the server-rendered dashboard under /ui, and Prometheus metrics.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"tiretrack/internal/api"
	"tiretrack/internal/app"
	"tiretrack/internal/config"
	internaldb "tiretrack/internal/db"
	"tiretrack/internal/metrics"
	"tiretrack/internal/middleware"
	"tiretrack/internal/service/reporting"
	"tiretrack/internal/service/security"
	"tiretrack/internal/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	writeDB, readDB, err := internaldb.OpenSQLitePair(cfg.DBPath, 4)
	if err != nil {
		return err
	}
	defer writeDB.Close()
	defer readDB.Close()

	if err := internaldb.RunMigrations(writeDB); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	application, err := app.New(ctx, app.Deps{
		Cfg:     cfg,
		WriteDB: writeDB,
		ReadDB:  readDB,
		Logger:  logger,
		Metrics: recorder,
	})
	if err != nil {
		return err
	}
	svcs := application.Services

	// Restore any persisted session before the first request can observe
	// the manager, so returning admins never see a login redirect while a
	// valid session exists on disk.
	svcs.Sessions.Restore(ctx)

	// Optional corporate SSO on the API.
	var oidcValidator middleware.JWTValidator
	var oidcResolver middleware.OIDCIdentityResolver
	if cfg.Auth.OIDCEnabled() {
		var v *middleware.OIDCValidator
		if cfg.Auth.JWKSURL != "" {
			v, err = middleware.NewOIDCValidatorFromJWKS(ctx, cfg.Auth.JWKSURL, cfg.Auth.IssuerURL, cfg.Auth.Audience, cfg.Auth.AllowedIssuers)
		} else {
			v, err = middleware.NewOIDCValidator(ctx, cfg.Auth.IssuerURL, cfg.Auth.Audience, cfg.Auth.AllowedIssuers)
		}
		if err != nil {
			return err
		}
		oidcValidator = v
		oidcResolver = security.NewOIDCResolver(application.Users, logger)
		logger.Info("external identity provider enabled", "issuer", cfg.Auth.IssuerURL)
	}
	authn := middleware.RequireAuth(application.TokenValidator, oidcValidator, oidcResolver)

	scheduler, err := reporting.NewScheduler(svcs.Reports, cfg.SnapshotSchedule, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(httpMetrics(recorder))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	apiHandler := api.NewHandler(svcs.Validator, svcs.Companies, svcs.Users, svcs.Audit, svcs.Fleet, svcs.Reports)
	r.Mount("/v1", apiHandler.Routes(authn))

	uiHandler := ui.NewHandler(
		svcs.Sessions, svcs.Guard,
		svcs.Companies, svcs.Users, svcs.Audit, svcs.Fleet, svcs.Reports,
		cfg.IsProduction(),
	)
	r.Route("/ui", func(r chi.Router) {
		ui.MountRoutes(r, uiHandler)
	})
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui", http.StatusSeeOther)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.ListenAddr, "tls", cfg.TLSCertFile != "")
		var err error
		if cfg.TLSCertFile != "" {
			err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// httpMetrics records request counts and latency per route pattern.
func httpMetrics(rec metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			rec.RecordHTTPRequest(r.Method, route, ww.Status(), time.Since(start))
		})
	}
}
