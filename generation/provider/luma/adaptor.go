package luma

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
		APIKey:    config.LumaAPIKey,
		BaseURL:   config.LumaBaseURL,
		Client:    util.HTTPClient,
		Poll:      provider.DefaultPollConfig(),
		Sleep:     time.Sleep,
		Thumbnail: provider.DefaultThumbnail,
	}
}

func (a *Adaptor) GetChannelName() string {
	return "Luma AI"
}

func (a *Adaptor) Configured() bool {
	return a.APIKey != ""
}

// Dream Machine has no duration knob, clip length is fixed by the model.
func (a *Adaptor) ConvertVideoRequest(request *model.Request) *GenerationRequest {
	return &GenerationRequest{
		Prompt:      request.Prompt,
		AspectRatio: request.Settings.AspectRatio(),
	}
}

func (a *Adaptor) Submit(ctx context.Context, request *model.Request) (*model.Asset, error) {
	jsonData, err := json.Marshal(a.ConvertVideoRequest(request))
	if err != nil {
		return nil, errors.Wrap(err, "marshal luma request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/dream-machine/v1/generations", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create luma request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "luma submit")
	}
	body, err := provider.ReadBody(resp)
	if err != nil {
		return nil, errors.Wrap(err, "read luma response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	var submitResponse GenerationResponse
	if err := json.Unmarshal(body, &submitResponse); err != nil {
		return nil, errors.Wrap(err, "parse luma response")
	}
	if submitResponse.ID == "" {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	return a.pollGeneration(ctx, submitResponse.ID)
}

func (a *Adaptor) pollGeneration(ctx context.Context, generationId string) (*model.Asset, error) {
	poll := a.Poll.WithDefaults()
	for attempt := 0; attempt < poll.MaxAttempts; attempt++ {
		a.Sleep(poll.Interval)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/dream-machine/v1/generations/"+generationId, nil)
		if err != nil {
			return nil, errors.Wrap(err, "create luma poll request")
		}
		req.Header.Set("Authorization", "Bearer "+a.APIKey)

		resp, err := a.Client.Do(req)
		if err != nil {
			continue
		}
		body, err := provider.ReadBody(resp)
		if err != nil {
			continue
		}

		var generation GenerationResponse
		if err := json.Unmarshal(body, &generation); err != nil {
			continue
		}

		switch generation.State {
		case "completed":
			if generation.Assets == nil || generation.Assets.Video == "" {
				return nil, fmt.Errorf("%s generation completed without video asset", a.GetChannelName())
			}
			thumbnail := generation.Assets.Thumbnail
			if thumbnail == "" {
				thumbnail = a.Thumbnail(generation.Assets.Video)
			}
			return &model.Asset{
				URL:          generation.Assets.Video,
				ThumbnailURL: thumbnail,
				Kind:         model.AssetVideo,
				Provider:     a.GetChannelName(),
			}, nil
		case "failed":
			reason := "generation failed"
			if generation.FailureReason != nil && *generation.FailureReason != "" {
				reason = *generation.FailureReason
			}
			return nil, fmt.Errorf("%s generation failed: %s", a.GetChannelName(), reason)
		}
		// queued / dreaming keep polling.
	}
	return nil, fmt.Errorf("%s generation timed out", a.GetChannelName())
}
