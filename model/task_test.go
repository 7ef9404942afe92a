package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
)

func newTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&VideoTask{}))

	DB = db
	originalRedis := common.RedisEnabled
	common.RedisEnabled = false
	t.Cleanup(func() {
		DB = nil
		common.RedisEnabled = originalRedis
	})
}

func TestJoinErrorDigest(t *testing.T) {
	assert.Equal(t, "", JoinErrorDigest(nil))
	assert.Equal(t, "Runway ML: status 500\nLuma AI: timed out",
		JoinErrorDigest([]string{"Runway ML: status 500", "Luma AI: timed out"}))
}

func TestInsertAndGetVideoTaskById(t *testing.T) {
	newTestDB(t)

	task := &VideoTask{
		TaskId:   "vg_abc",
		Username: "alice",
		Prompt:   "city at night",
		Provider: "Runway ML",
		VideoUrl: "https://cdn.test/clip.mp4",
	}
	require.NoError(t, task.Insert())

	got, err := GetVideoTaskById("vg_abc")
	require.NoError(t, err)
	assert.Equal(t, "city at night", got.Prompt)
	assert.Equal(t, "Runway ML", got.Provider)

	_, err = GetVideoTaskById("vg_missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record found")
}

func TestCacheGetVideoTaskFallsThroughToDB(t *testing.T) {
	newTestDB(t)

	task := &VideoTask{TaskId: "vg_cached", Username: "alice", Prompt: "forest"}
	require.NoError(t, task.Insert())

	got, err := CacheGetVideoTask("vg_cached")
	require.NoError(t, err)
	assert.Equal(t, "forest", got.Prompt)
}

func TestGetUserVideoTasksPagination(t *testing.T) {
	newTestDB(t)

	for _, task := range []*VideoTask{
		{TaskId: "vg_1", Username: "alice", Prompt: "one"},
		{TaskId: "vg_2", Username: "alice", Prompt: "two"},
		{TaskId: "vg_3", Username: "alice", Prompt: "three"},
		{TaskId: "vg_4", Username: "bob", Prompt: "other"},
	} {
		require.NoError(t, task.Insert())
	}

	page, err := GetUserVideoTasks("alice", 0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0].Prompt, "listing is newest first")
	assert.Equal(t, "two", page[1].Prompt)

	rest, err := GetUserVideoTasks("alice", 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "one", rest[0].Prompt)
}

func TestUpdateVideoTaskMirror(t *testing.T) {
	newTestDB(t)

	task := &VideoTask{TaskId: "vg_mirror", Username: "alice"}
	require.NoError(t, task.Insert())
	require.NoError(t, UpdateVideoTaskMirror("vg_mirror", "https://bucket.test/generated/clip.mp4"))

	got, err := GetVideoTaskById("vg_mirror")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/generated/clip.mp4", got.MirrorUrl)
}
