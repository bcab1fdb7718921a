package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/geocoder89/neuralpulse/internal/auth"
	"github.com/geocoder89/neuralpulse/internal/cache"
	"github.com/geocoder89/neuralpulse/internal/domain/article"
	"github.com/geocoder89/neuralpulse/internal/http/handlers"
	"github.com/geocoder89/neuralpulse/internal/http/middlewares"
	"github.com/geocoder89/neuralpulse/internal/observability"
	"github.com/geocoder89/neuralpulse/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type RouterConfig struct {
	Env             string
	CORSOrigins     []string
	MaxBodyBytes    int64
	LoginRateLimit  int
	LoginRateWindow time.Duration
	// RegisterRateLimit shares LoginRateWindow; zero means LoginRateLimit.
	RegisterRateLimit int
	// TrustedProxies may set X-Forwarded-For; empty trusts none.
	TrustedProxies []string
	BlogCacheTTL   time.Duration
	DeletePolicy   article.DeletePolicy
}

type Deps struct {
	Log   *slog.Logger
	Store *store.Store
	JWT   *auth.Manager
	Prom  *observability.Prom
	// Gatherer backs /metrics; nil serves the default registry.
	Gatherer prometheus.Gatherer
	// Ping is the readiness probe for the persistence backend.
	Ping func(ctx context.Context) error
}

func NewRouter(cfg RouterConfig, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error("invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "err", err)
		_ = r.SetTrustedProxies(nil)
	}

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware("neuralpulse-api"))
	r.Use(middlewares.RequestLogger(log))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	// health
	ping := func() error {
		if deps.Ping == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return deps.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// public blog, cached until the next store write
	blogHandler := handlers.NewBlogHandler(deps.Store, cache.New(cfg.BlogCacheTTL))
	deps.Store.Subscribe(func(store.State) {
		blogHandler.Invalidate()
	})

	r.GET("/blog", blogHandler.ListPosts)
	r.GET("/blog/:slug", blogHandler.GetPost)

	// auth
	authMW := middlewares.NewAuthMiddleware(deps.JWT)
	loginLimiter := middlewares.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	registerLimit := cfg.RegisterRateLimit
	if registerLimit <= 0 {
		registerLimit = cfg.LoginRateLimit
	}
	registerLimiter := middlewares.NewRateLimiter(registerLimit, cfg.LoginRateWindow)

	authHandler := handlers.NewAuthHandler(deps.Store, deps.JWT)
	r.POST("/auth/login", loginLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.Login)
	r.POST("/auth/register", registerLimiter.RateLimiterMiddleware(middlewares.KeyByIP), authHandler.SignUp)

	authed := r.Group("/")
	authed.Use(authMW.RequireAuth())

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)
	authed.GET("/session", authHandler.Session)

	// users
	usersHandler := handlers.NewUsersHandler(deps.Store)
	authed.GET("/users", authMW.RequireRole("admin"), usersHandler.ListUsers)
	authed.POST("/users", authMW.RequireRole("admin"), usersHandler.CreateUser)
	authed.PATCH("/users/:id", usersHandler.UpdateUser)

	// articles
	articlesHandler := handlers.NewArticlesHandler(deps.Store, cfg.DeletePolicy)
	authed.GET("/articles", articlesHandler.ListArticles)
	authed.POST("/articles", articlesHandler.CreateArticle)
	authed.GET("/articles/:id", articlesHandler.GetArticle)
	authed.PATCH("/articles/:id", articlesHandler.UpdateArticle)
	authed.DELETE("/articles/:id", articlesHandler.DeleteArticle)

	// images
	imagesHandler := handlers.NewImagesHandler(deps.Store)
	authed.GET("/images", imagesHandler.ListImages)
	authed.POST("/images", imagesHandler.UploadImage)
	authed.GET("/images/:id", imagesHandler.GetImage)
	authed.DELETE("/images/:id", imagesHandler.DeleteImage)

	return r
}
