package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

// VideoTask is one orchestration run as the dashboard sees it. ErrorDigest
// keeps the per-provider failure reasons in attempt order, newline separated.
type VideoTask struct {
	Id           int    `json:"id" gorm:"primaryKey"`
	TaskId       string `json:"task_id" gorm:"uniqueIndex"`
	Username     string `json:"username" gorm:"index"`
	Prompt       string `json:"prompt" gorm:"type:text"`
	Platform     string `json:"platform"`
	Duration     int    `json:"duration"`
	Style        string `json:"style"`
	Quality      string `json:"quality"`
	Language     string `json:"language"`
	Voice        string `json:"voice"`
	Industry     string `json:"industry"`
	Tone         string `json:"tone"`
	Provider     string `json:"provider"`
	VideoUrl     string `json:"video_url"`
	ThumbnailUrl string `json:"thumbnail_url"`
	MirrorUrl    string `json:"mirror_url"`
	Demo         bool   `json:"demo"`
	StaticImage  bool   `json:"static_image"`
	ErrorDigest  string `json:"error_digest" gorm:"type:text"`
	CreatedAt    int64  `json:"created_at" gorm:"bigint"`
}

func (task *VideoTask) Insert() error {
	return DB.Create(task).Error
}

func GetVideoTaskById(taskId string) (*VideoTask, error) {
	var task VideoTask
	result := DB.Where("task_id = ?", taskId).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no record found for task_id: %s", taskId)
		}
		return nil, result.Error
	}
	return &task, nil
}

func GetUserVideoTasks(username string, startIdx int, num int) ([]*VideoTask, error) {
	var tasks []*VideoTask
	err := DB.Where("username = ?", username).Order("id desc").Limit(num).Offset(startIdx).Find(&tasks).Error
	return tasks, err
}

func UpdateVideoTaskMirror(taskId string, mirrorUrl string) error {
	err := DB.Model(&VideoTask{}).Where("task_id = ?", taskId).Update("mirror_url", mirrorUrl).Error
	if err != nil {
		return err
	}
	// The cached copy predates the mirror URL, drop it.
	if common.RedisEnabled {
		if err := common.RedisDel(cacheKey(taskId)); err != nil {
			logger.SysError("failed to invalidate video task cache: " + err.Error())
		}
	}
	return nil
}

func JoinErrorDigest(reasons []string) string {
	return strings.Join(reasons, "\n")
}

const videoTaskCacheTTL = 10 * time.Minute

func cacheKey(taskId string) string {
	return "video_task:" + taskId
}

// CacheSetVideoTask keeps the status endpoint off the database for recent
// tasks. A cache miss falls through to GetVideoTaskById.
func CacheSetVideoTask(task *VideoTask) {
	if !common.RedisEnabled {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		logger.SysError("failed to marshal video task for cache: " + err.Error())
		return
	}
	if err := common.RedisSet(cacheKey(task.TaskId), string(data), videoTaskCacheTTL); err != nil {
		logger.SysError("failed to cache video task: " + err.Error())
	}
}

func CacheGetVideoTask(taskId string) (*VideoTask, error) {
	if !common.RedisEnabled {
		return GetVideoTaskById(taskId)
	}
	data, err := common.RedisGet(cacheKey(taskId))
	if err != nil {
		task, err := GetVideoTaskById(taskId)
		if err != nil {
			return nil, err
		}
		CacheSetVideoTask(task)
		return task, nil
	}
	var task VideoTask
	if err := json.Unmarshal([]byte(data), &task); err != nil {
		return GetVideoTaskById(taskId)
	}
	return &task, nil
}
