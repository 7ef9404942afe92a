package runway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider"
)

func newTestAdaptor(serverURL string, maxAttempts int) *Adaptor {
	return &Adaptor{
		APIKey:    "test-key",
		BaseURL:   serverURL,
		Client:    http.DefaultClient,
		Poll:      provider.PollConfig{MaxAttempts: maxAttempts, Interval: time.Millisecond},
		Sleep:     func(time.Duration) {},
		Thumbnail: provider.DefaultThumbnail,
	}
}

func TestConvertVideoRequest(t *testing.T) {
	a := newTestAdaptor("http://unused", 1)

	tests := []struct {
		name         string
		settings     model.Settings
		wantRatio    string
		wantDuration int
	}{
		{"tiktok is vertical", model.Settings{Platform: "tiktok", Duration: 8}, "768:1280", 8},
		{"instagram is vertical", model.Settings{Platform: "instagram"}, "768:1280", 5},
		{"youtube is horizontal", model.Settings{Platform: "youtube", Duration: 8}, "1280:768", 8},
		{"duration clamped to provider max", model.Settings{Duration: 60}, "1280:768", 10},
		{"unset duration uses default", model.Settings{}, "1280:768", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := a.ConvertVideoRequest(&model.Request{Prompt: "p", Settings: tt.settings})
			assert.Equal(t, tt.wantRatio, payload.Ratio)
			assert.Equal(t, tt.wantDuration, payload.Duration)
			assert.Equal(t, "gen3a_turbo", payload.Model)
		})
	}
}

func TestSubmitRejectedUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL, 5)
	asset, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Nil(t, asset)
	assert.Contains(t, err.Error(), "Runway ML")
	assert.Contains(t, err.Error(), "status 500")
}

func TestSubmitMissingTaskId(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL, 5)
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Runway ML")
}

func TestSubmitSucceedsOnThirdPoll(t *testing.T) {
	var pollCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(VideoResponse{Id: "task-123"})
			return
		}
		require.True(t, strings.HasSuffix(r.URL.Path, "/v1/tasks/task-123"))
		n := atomic.AddInt32(&pollCalls, 1)
		if n < 3 {
			_ = json.NewEncoder(w).Encode(VideoFinalResponse{ID: "task-123", Status: "RUNNING"})
			return
		}
		_ = json.NewEncoder(w).Encode(VideoFinalResponse{
			ID:     "task-123",
			Status: "SUCCEEDED",
			Output: []string{"https://cdn.runway.test/task-123.mp4"},
		})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL, 10)
	asset, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&pollCalls), "polling must stop at the first terminal state")
	assert.Equal(t, "https://cdn.runway.test/task-123.mp4", asset.URL)
	assert.Equal(t, "https://cdn.runway.test/task-123-thumbnail.jpg", asset.ThumbnailURL)
	assert.Equal(t, model.AssetVideo, asset.Kind)
}

func TestSubmitPropagatesTerminalFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(VideoResponse{Id: "task-456"})
			return
		}
		_ = json.NewEncoder(w).Encode(VideoFinalResponse{
			ID:      "task-456",
			Status:  "FAILED",
			Failure: "content moderation rejected the prompt",
		})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL, 10)
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content moderation rejected the prompt")
}

func TestSubmitPollLoopIsBounded(t *testing.T) {
	var pollCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(VideoResponse{Id: "task-789"})
			return
		}
		atomic.AddInt32(&pollCalls, 1)
		_ = json.NewEncoder(w).Encode(VideoFinalResponse{ID: "task-789", Status: "RUNNING"})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL, 4)
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, int32(4), atomic.LoadInt32(&pollCalls))
}

func TestConfigured(t *testing.T) {
	a := newTestAdaptor("http://unused", 1)
	assert.True(t, a.Configured())
	a.APIKey = ""
	assert.False(t, a.Configured())
}
