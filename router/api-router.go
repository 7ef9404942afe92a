package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/elhaiti30/short-form-video-blitz-sub000/controller"
	"github.com/elhaiti30/short-form-video-blitz-sub000/middleware"
)

func SetApiRouter(router *gin.Engine) {
	apiRouter := router.Group("/api")
	apiRouter.Use(gzip.Gzip(gzip.DefaultCompression))
	apiRouter.Use(middleware.PanicRecover())
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", controller.GetStatus)
		apiRouter.GET("/monitor/health", controller.HealthProbe)

		videoRoute := apiRouter.Group("/video")
		videoRoute.Use(middleware.UserAuth())
		{
			videoRoute.POST("/generations", controller.GenerateVideo)
			videoRoute.GET("/generations", controller.GetUserVideoTasks)
			videoRoute.GET("/generations/:task_id", controller.GetVideoTask)
		}

		scriptRoute := apiRouter.Group("/script")
		scriptRoute.Use(middleware.UserAuth())
		{
			scriptRoute.POST("/generations", controller.GenerateScript)
		}
	}
}
