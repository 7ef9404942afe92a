package luma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider"
)

func newTestAdaptor(serverURL string) *Adaptor {
	return &Adaptor{
		APIKey:    "test-key",
		BaseURL:   serverURL,
		Client:    http.DefaultClient,
		Poll:      provider.PollConfig{MaxAttempts: 5, Interval: time.Millisecond},
		Sleep:     func(time.Duration) {},
		Thumbnail: provider.DefaultThumbnail,
	}
}

func TestSubmitCompletedGeneration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req GenerationRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "9:16", req.AspectRatio)
			_ = json.NewEncoder(w).Encode(GenerationResponse{ID: "gen-1", State: "queued"})
			return
		}
		_ = json.NewEncoder(w).Encode(GenerationResponse{
			ID:    "gen-1",
			State: "completed",
			Assets: &Assets{
				Video:     "https://cdn.luma.test/gen-1.mp4",
				Thumbnail: "https://cdn.luma.test/gen-1.jpg",
			},
		})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL)
	asset, err := a.Submit(context.Background(), &model.Request{
		Prompt:   "city at night",
		Settings: model.Settings{Platform: "tiktok"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.luma.test/gen-1.mp4", asset.URL)
	assert.Equal(t, "https://cdn.luma.test/gen-1.jpg", asset.ThumbnailURL)
	assert.Equal(t, model.AssetVideo, asset.Kind)
}

func TestSubmitDerivesThumbnailWhenMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(GenerationResponse{ID: "gen-2", State: "queued"})
			return
		}
		_ = json.NewEncoder(w).Encode(GenerationResponse{
			ID:     "gen-2",
			State:  "completed",
			Assets: &Assets{Video: "https://cdn.luma.test/gen-2.mp4"},
		})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL)
	asset, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.luma.test/gen-2-thumbnail.jpg", asset.ThumbnailURL)
}

func TestSubmitFailedGeneration(t *testing.T) {
	reason := "nsfw content detected"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(GenerationResponse{ID: "gen-3", State: "queued"})
			return
		}
		_ = json.NewEncoder(w).Encode(GenerationResponse{
			ID:            "gen-3",
			State:         "failed",
			FailureReason: &reason,
		})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL)
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Luma AI")
	assert.Contains(t, err.Error(), reason)
}

func TestSubmitPollLoopIsBounded(t *testing.T) {
	var pollCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(GenerationResponse{ID: "gen-4", State: "queued"})
			return
		}
		atomic.AddInt32(&pollCalls, 1)
		_ = json.NewEncoder(w).Encode(GenerationResponse{ID: "gen-4", State: "dreaming"})
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL)
	a.Poll = provider.PollConfig{MaxAttempts: 4, Interval: time.Millisecond}
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.Equal(t, int32(4), atomic.LoadInt32(&pollCalls))
}

func TestSubmitRejectedUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	a := newTestAdaptor(server.URL)
	_, err := a.Submit(context.Background(), &model.Request{Prompt: "city at night"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
