package router

import (
	"fmt"
	"os"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

func SetRouter(router *gin.Engine) {
	SetApiRouter(router)

	// Locally hosted demo samples, lets the fallback assets be served from
	// this instance instead of the public bucket.
	if _, err := os.Stat("./static"); err == nil {
		router.Use(static.Serve("/static", static.LocalFile("./static", false)))
		logger.SysLog("serving demo assets from ./static")
	}

	swaggerURL := os.Getenv("SWAGGER_JSON_URL")
	if swaggerURL != "" {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL(swaggerURL),
		))
		logger.SysLog(fmt.Sprintf("Swagger UI enabled at /swagger/index.html (doc: %s)", swaggerURL))
	}
}
