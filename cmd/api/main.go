package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/neuralpulse/internal/auth"
	"github.com/geocoder89/neuralpulse/internal/config"
	"github.com/geocoder89/neuralpulse/internal/domain/article"
	httpx "github.com/geocoder89/neuralpulse/internal/http"
	"github.com/geocoder89/neuralpulse/internal/observability"
	"github.com/geocoder89/neuralpulse/internal/repo/backend"
	"github.com/geocoder89/neuralpulse/internal/repo/slot"
	"github.com/geocoder89/neuralpulse/internal/security"
	"github.com/geocoder89/neuralpulse/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load the config set up
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
			ServiceName: "neuralpulse-api",
			Endpoint:    cfg.OTLPEndpoint,
			Env:         cfg.Env,
			SampleRatio: cfg.OTELSampleRatio,
		})
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
	}

	deletePolicy, err := article.ParseDeletePolicy(cfg.Articles.DeletePolicy)
	if err != nil {
		return err
	}
	if deletePolicy == article.DeleteLegacy {
		log.Warn("legacy article delete policy active: only admins can delete articles")
	}

	hasher, err := security.NewHasher(cfg.Auth.PasswordHasher)
	if err != nil {
		return err
	}
	if _, plain := hasher.(security.Plaintext); plain {
		log.Warn("passwords are stored in plaintext; set PASSWORD_HASHER=bcrypt for new deployments")
	}

	prom := observability.NewProm(prometheus.DefaultRegisterer)

	kv, closeKV, err := backend.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s backend: %w", cfg.Persist.Backend, err)
	}
	defer closeKV()

	persister := store.NewSlotPersister(slot.Observed(kv, prom.ObservePersist), cfg.Persist.Key)

	st, err := store.New(ctx, persister,
		store.WithLogger(log),
		store.WithHasher(hasher),
	)
	if err != nil {
		return fmt.Errorf("%s backend: %w", cfg.Persist.Backend, err)
	}

	recordStoreMetrics(prom, st.State())
	st.Subscribe(func(s store.State) { recordStoreMetrics(prom, s) })

	if _, err := st.EnsureAdmin(store.AdminSeed{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
	}); err != nil {
		return err
	}

	router := httpx.NewRouter(httpx.RouterConfig{
		Env:               cfg.Env,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
		LoginRateLimit:    cfg.HTTP.LoginRateLimit,
		LoginRateWindow:   cfg.LoginRateWindow(),
		RegisterRateLimit: cfg.HTTP.RegisterRateLimit,
		TrustedProxies:    cfg.HTTP.TrustedProxies,
		BlogCacheTTL:      cfg.BlogCacheTTL(),
		DeletePolicy:      deletePolicy,
	}, httpx.Deps{
		Log:   log,
		Store: st,
		JWT:   auth.NewManager(cfg.Auth.JWTSecret, cfg.AccessTTL()),
		Prom:  prom,
		Ping:  persister.Ping,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.Persist.Backend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-stop:
	}
	log.Info("server shutting down")

	shutdownCtx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

func recordStoreMetrics(prom *observability.Prom, s store.State) {
	published := len(article.Published(s.Articles))
	prom.SetStoreCounts(len(s.Users), published, len(s.Articles)-published, len(s.UploadedImages))
}
