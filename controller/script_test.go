package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
)

func withOpenAIProvider(t *testing.T, apiKey string, baseURL string) {
	t.Helper()
	originalKey := config.OpenAIAPIKey
	originalURL := config.OpenAIBaseURL
	config.OpenAIAPIKey = apiKey
	if baseURL != "" {
		config.OpenAIBaseURL = baseURL
	}
	t.Cleanup(func() {
		config.OpenAIAPIKey = originalKey
		config.OpenAIBaseURL = originalURL
	})
}

func postScript(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.POST("/api/script/generations", GenerateScript)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/script/generations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestGenerateScriptEmptyTopic(t *testing.T) {
	withOpenAIProvider(t, "", "")

	w := postScript(t, `{"topic": "   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateScriptTemplateFallback(t *testing.T) {
	withOpenAIProvider(t, "", "")

	w := postScript(t, `{"topic": "meal prep for busy weeks"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response ScriptGenerationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.True(t, response.IsDemo)
	assert.Contains(t, response.Script, "HOOK:")
	assert.Contains(t, response.Script, "meal prep for busy weeks")
}

func TestGenerateScriptProviderSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "meal prep")

		_ = json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{
				{Message: chatMessage{Role: "assistant", Content: "HOOK: the real script"}},
			},
		})
	}))
	defer server.Close()
	withOpenAIProvider(t, "test-key", server.URL)

	w := postScript(t, `{"topic": "meal prep", "settings": {"platform": "tiktok", "tone": "upbeat"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response ScriptGenerationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.False(t, response.IsDemo)
	assert.Equal(t, "HOOK: the real script", response.Script)
}

func TestGenerateScriptProviderFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	withOpenAIProvider(t, "test-key", server.URL)

	w := postScript(t, `{"topic": "meal prep"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var response ScriptGenerationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success, "a broken provider still yields a usable script")
	assert.True(t, response.IsDemo)
	assert.Contains(t, response.Script, "HOOK:")
}
