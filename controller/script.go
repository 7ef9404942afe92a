package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
	genmodel "github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/util"
)

type ScriptGenerationRequest struct {
	Topic    string            `json:"topic"`
	Settings genmodel.Settings `json:"settings"`
}

type ScriptGenerationResponse struct {
	Success bool   `json:"success"`
	Script  string `json:"script,omitempty"`
	IsDemo  bool   `json:"isDemo"`
	Message string `json:"message"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateScript is the simpler sibling of GenerateVideo: one provider, one
// static fallback, same always-succeed posture.
func GenerateScript(c *gin.Context) {
	ctx := c.Request.Context()

	var scriptRequest ScriptGenerationRequest
	if err := common.UnmarshalBodyReusable(c, &scriptRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body: " + err.Error(),
		})
		return
	}
	if strings.TrimSpace(scriptRequest.Topic) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "topic must not be empty",
		})
		return
	}

	if config.OpenAIAPIKey != "" {
		script, err := requestScript(c, &scriptRequest)
		if err == nil {
			c.JSON(http.StatusOK, ScriptGenerationResponse{
				Success: true,
				Script:  script,
				Message: "Script generated successfully",
			})
			return
		}
		logger.Warnf(ctx, "script generation failed, using template: %s", err.Error())
	}

	c.JSON(http.StatusOK, ScriptGenerationResponse{
		Success: true,
		Script:  templateScript(&scriptRequest),
		IsDemo:  true,
		Message: "Script provider unavailable, returning a template script",
	})
}

func requestScript(c *gin.Context, scriptRequest *ScriptGenerationRequest) (string, error) {
	settings := scriptRequest.Settings
	system := "You write short-form video scripts: a hook, three tight beats, and a call to action."
	user := fmt.Sprintf("Write a %d-second %s video script about: %s.",
		settings.ClampedDuration(30, 180), settings.Platform, scriptRequest.Topic)
	if settings.Tone != "" {
		user += " Tone: " + settings.Tone + "."
	}
	if settings.Industry != "" {
		user += " Industry: " + settings.Industry + "."
	}
	if settings.Language != "" {
		user += " Language: " + settings.Language + "."
	}

	jsonData, err := json.Marshal(chatCompletionRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
		config.OpenAIBaseURL+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.OpenAIAPIKey)

	resp, err := util.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("script provider returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("script provider returned no content")
	}
	return completion.Choices[0].Message.Content, nil
}

func templateScript(scriptRequest *ScriptGenerationRequest) string {
	topic := scriptRequest.Topic
	return strings.Join([]string{
		fmt.Sprintf("HOOK: Stop scrolling - here's what nobody tells you about %s.", topic),
		fmt.Sprintf("BEAT 1: The biggest mistake people make with %s, and why it costs them.", topic),
		fmt.Sprintf("BEAT 2: The one change that makes %s actually work.", topic),
		"BEAT 3: Proof it works - show the before and after.",
		"CTA: Follow for more, and comment what you want covered next.",
	}, "\n")
}
