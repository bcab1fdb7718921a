package middlewares

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}

	// Authorization must be allowed so the dashboard can send the JWT
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "If-None-Match"}
	cfg.ExposeHeaders = []string{"ETag", "X-Request-Id", "Retry-After"}
	cfg.MaxAge = 12 * time.Hour

	return cors.New(cfg)
}
