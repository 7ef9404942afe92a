package runway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/util"
)

const (
	defaultDuration = 5
	maxDuration     = 10
	apiVersion      = "2024-11-06"
)

type Adaptor struct {
	APIKey    string
	BaseURL   string
	Client    provider.Doer
	Poll      provider.PollConfig
	Sleep     provider.SleepFunc
	Thumbnail provider.ThumbnailFunc
}

func NewAdaptor() *Adaptor {
	return &Adaptor{
		APIKey:    config.RunwayAPIKey,
		BaseURL:   config.RunwayBaseURL,
		Client:    util.HTTPClient,
		Poll:      provider.DefaultPollConfig(),
		Sleep:     time.Sleep,
		Thumbnail: provider.DefaultThumbnail,
	}
}

func (a *Adaptor) GetChannelName() string {
	return "Runway ML"
}

func (a *Adaptor) Configured() bool {
	return a.APIKey != ""
}

// ConvertVideoRequest builds the Gen-3 payload from the caller's settings.
// Runway expresses orientation as pixel ratios rather than 9:16 / 16:9.
func (a *Adaptor) ConvertVideoRequest(request *model.Request) *VideoGenerationRequest {
	ratio := "1280:768"
	if request.Settings.AspectRatio() == "9:16" {
		ratio = "768:1280"
	}
	return &VideoGenerationRequest{
		Model:      "gen3a_turbo",
		PromptText: request.Prompt,
		Duration:   request.Settings.ClampedDuration(defaultDuration, maxDuration),
		Ratio:      ratio,
	}
}

func (a *Adaptor) Submit(ctx context.Context, request *model.Request) (*model.Asset, error) {
	jsonData, err := json.Marshal(a.ConvertVideoRequest(request))
	if err != nil {
		return nil, errors.Wrap(err, "marshal runway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/v1/text_to_video", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create runway request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)
	req.Header.Set("X-Runway-Version", apiVersion)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "runway submit")
	}
	body, err := provider.ReadBody(resp)
	if err != nil {
		return nil, errors.Wrap(err, "read runway response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	var submitResponse VideoResponse
	if err := json.Unmarshal(body, &submitResponse); err != nil {
		return nil, errors.Wrap(err, "parse runway response")
	}
	if submitResponse.Id == "" {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	return a.pollTask(ctx, submitResponse.Id)
}

func (a *Adaptor) pollTask(ctx context.Context, taskId string) (*model.Asset, error) {
	poll := a.Poll.WithDefaults()
	for attempt := 0; attempt < poll.MaxAttempts; attempt++ {
		a.Sleep(poll.Interval)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/v1/tasks/"+taskId, nil)
		if err != nil {
			return nil, errors.Wrap(err, "create runway poll request")
		}
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
		req.Header.Set("X-Runway-Version", apiVersion)

		resp, err := a.Client.Do(req)
		if err != nil {
			// Transient poll failures count against the attempt budget.
			continue
		}
		body, err := provider.ReadBody(resp)
		if err != nil {
			continue
		}

		var taskResponse VideoFinalResponse
		if err := json.Unmarshal(body, &taskResponse); err != nil {
			continue
		}

		switch taskResponse.Status {
		case "SUCCEEDED":
			if len(taskResponse.Output) == 0 {
				return nil, fmt.Errorf("%s task succeeded without output", a.GetChannelName())
			}
			videoUrl := taskResponse.Output[0]
			return &model.Asset{
				URL:          videoUrl,
				ThumbnailURL: a.Thumbnail(videoUrl),
				Kind:         model.AssetVideo,
				Provider:     a.GetChannelName(),
			}, nil
		case "FAILED":
			reason := taskResponse.Failure
			if reason == "" {
				reason = "generation failed"
			}
			return nil, fmt.Errorf("%s task failed: %s", a.GetChannelName(), reason)
		}
		// PENDING / RUNNING / THROTTLED keep polling.
	}
	return nil, fmt.Errorf("%s task timed out", a.GetChannelName())
}
