package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

// CORS trusts the dashboard origins listed in CORS_ALLOW_ORIGINS. Without the
// env var every origin is accepted so local development needs no setup. The
// API is JSON-only, so the header and method lists stay tight.
func CORS() gin.HandlerFunc {
	options := cors.Options{
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", logger.RequestIdKey},
	}
	if len(config.CORSAllowOrigins) > 0 {
		options.AllowedOrigins = config.CORSAllowOrigins
	} else {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options)
}
