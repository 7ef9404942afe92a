package controller

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
)

func GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "",
		"data": gin.H{
			"version":        common.Version,
			"start_time":     common.StartTime,
			"system_name":    config.SystemName,
			"server_address": config.ServerAddress,
			"providers": gin.H{
				"runway":       config.RunwayAPIKey != "",
				"luma":         config.LumaAPIKey != "",
				"pika":         config.PikaAPIKey != "",
				"openai_image": config.OpenAIAPIKey != "",
			},
		},
	})
}

func HealthProbe(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"goroutines": runtime.NumGoroutine(),
		"memory": gin.H{
			"alloc_mb":       m.Alloc / 1024 / 1024,
			"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
			"sys_mb":         m.Sys / 1024 / 1024,
			"num_gc":         m.NumGC,
		},
	})
}
