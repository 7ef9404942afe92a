package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/helper"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/storage"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation"
	genmodel "github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	dbmodel "github.com/elhaiti30/short-form-video-blitz-sub000/model"
)

type VideoGenerationRequest struct {
	Prompt   string            `json:"prompt"`
	Settings genmodel.Settings `json:"settings"`
}

// VideoGenerationResponse always reports success for a well-formed request,
// even on the demo path. IsDemo plus Errors is the only signal that real
// generation did not happen, the presenting layer relies on both being
// accurate.
type VideoGenerationResponse struct {
	Success       bool     `json:"success"`
	TaskId        string   `json:"task_id,omitempty"`
	VideoUrl      string   `json:"videoUrl,omitempty"`
	ThumbnailUrl  string   `json:"thumbnailUrl,omitempty"`
	IsDemo        bool     `json:"isDemo"`
	IsStaticImage bool     `json:"isStaticImage"`
	Platform      string   `json:"platform,omitempty"`
	Message       string   `json:"message"`
	Errors        []string `json:"errors,omitempty"`
}

// newOrchestrator is swapped out by tests.
var newOrchestrator = generation.NewOrchestrator

func GenerateVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var videoRequest VideoGenerationRequest
	if err := common.UnmarshalBodyReusable(c, &videoRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body: " + err.Error(),
		})
		return
	}

	request := &genmodel.Request{
		Prompt:   videoRequest.Prompt,
		Settings: videoRequest.Settings,
	}

	runCtx := ctx
	if config.RunBudgetSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(config.RunBudgetSeconds)*time.Second)
		defer cancel()
	}

	result, err := newOrchestrator().Run(runCtx, request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	taskId := helper.GenTaskID("vg")
	response := VideoGenerationResponse{
		Success:       true,
		TaskId:        taskId,
		VideoUrl:      result.Asset.URL,
		ThumbnailUrl:  result.Asset.ThumbnailURL,
		IsDemo:        result.Demo,
		IsStaticImage: result.Asset.Kind == genmodel.AssetStaticImage,
		Platform:      result.Provider,
		Message:       buildMessage(result),
		Errors:        result.ErrorReasons(),
	}
	c.JSON(http.StatusOK, response)

	persistVideoTask(ctx, taskId, videoRequest, result, c.GetString("username"))
}

func buildMessage(result *genmodel.Result) string {
	if result.Demo {
		return "All providers unavailable, returning a demo video"
	}
	if result.Asset.Kind == genmodel.AssetStaticImage {
		return fmt.Sprintf("Generated a static image preview with %s", result.Provider)
	}
	return fmt.Sprintf("Video generated successfully with %s", result.Provider)
}

// persistVideoTask records the run for the dashboard and, when a bucket is
// configured, mirrors real assets off the provider's expiring URL. Both
// happen off the request goroutine.
func persistVideoTask(ctx context.Context, taskId string, videoRequest VideoGenerationRequest, result *genmodel.Result, username string) {
	if dbmodel.DB == nil {
		return
	}
	common.TaskCtxGo(ctx, func() {
		task := &dbmodel.VideoTask{
			TaskId:       taskId,
			Username:     username,
			Prompt:       videoRequest.Prompt,
			Provider:     result.Provider,
			VideoUrl:     result.Asset.URL,
			ThumbnailUrl: result.Asset.ThumbnailURL,
			Demo:         result.Demo,
			StaticImage:  result.Asset.Kind == genmodel.AssetStaticImage,
			ErrorDigest:  dbmodel.JoinErrorDigest(result.ErrorReasons()),
			CreatedAt:    helper.GetTimestamp(),
		}
		if err := copier.Copy(task, &videoRequest.Settings); err != nil {
			logger.SysError("failed to copy settings into task record: " + err.Error())
		}
		if err := task.Insert(); err != nil {
			logger.SysError("failed to persist video task: " + err.Error())
			return
		}
		dbmodel.CacheSetVideoTask(task)

		if !result.Demo && storage.Enabled() {
			mirrorCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			mirrorUrl, err := storage.MirrorAsset(mirrorCtx, result.Asset.URL, taskId)
			if err != nil {
				logger.SysError("failed to mirror asset: " + err.Error())
				return
			}
			if err := dbmodel.UpdateVideoTaskMirror(taskId, mirrorUrl); err != nil {
				logger.SysError("failed to record mirror url: " + err.Error())
			}
		}
	})
}

func GetUserVideoTasks(c *gin.Context) {
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	tasks, err := dbmodel.GetUserVideoTasks(c.GetString("username"), p*common.ItemsPerPage, common.ItemsPerPage)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tasks,
	})
}

func GetVideoTask(c *gin.Context) {
	taskId := c.Param("task_id")
	task, err := dbmodel.CacheGetVideoTask(taskId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}
