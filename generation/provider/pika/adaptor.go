package pika

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
	defaultDuration = 3
	maxDuration     = 5
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
		APIKey:    config.PikaAPIKey,
		BaseURL:   config.PikaBaseURL,
		Client:    util.HTTPClient,
		Poll:      provider.DefaultPollConfig(),
		Sleep:     time.Sleep,
		Thumbnail: provider.DefaultThumbnail,
	}
}

func (a *Adaptor) GetChannelName() string {
	return "Pika Labs"
}

func (a *Adaptor) Configured() bool {
	return a.APIKey != ""
}

func (a *Adaptor) ConvertVideoRequest(request *model.Request) *GenerateRequest {
	return &GenerateRequest{
		PromptText: request.Prompt,
		Options: Options{
			AspectRatio: request.Settings.AspectRatio(),
			Duration:    request.Settings.ClampedDuration(defaultDuration, maxDuration),
			Style:       request.Settings.Style,
		},
	}
}

func (a *Adaptor) Submit(ctx context.Context, request *model.Request) (*model.Asset, error) {
	jsonData, err := json.Marshal(a.ConvertVideoRequest(request))
	if err != nil {
		return nil, errors.Wrap(err, "marshal pika request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/v1/videos", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create pika request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "pika submit")
	}
	body, err := provider.ReadBody(resp)
	if err != nil {
		return nil, errors.Wrap(err, "read pika response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	var submitResponse GenerateResponse
	if err := json.Unmarshal(body, &submitResponse); err != nil {
		return nil, errors.Wrap(err, "parse pika response")
	}
	if submitResponse.JobId == "" {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	return a.pollJob(ctx, submitResponse.JobId)
}

func (a *Adaptor) pollJob(ctx context.Context, jobId string) (*model.Asset, error) {
	poll := a.Poll.WithDefaults()
	for attempt := 0; attempt < poll.MaxAttempts; attempt++ {
		a.Sleep(poll.Interval)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/v1/videos/"+jobId, nil)
		if err != nil {
			return nil, errors.Wrap(err, "create pika poll request")
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

		var job JobResponse
		if err := json.Unmarshal(body, &job); err != nil {
			continue
		}

		switch job.Status {
		case "finished":
			if job.VideoUrl == "" {
				return nil, fmt.Errorf("%s job finished without video url", a.GetChannelName())
			}
			thumbnail := job.ThumbnailUrl
			if thumbnail == "" {
				thumbnail = a.Thumbnail(job.VideoUrl)
			}
			return &model.Asset{
				URL:          job.VideoUrl,
				ThumbnailURL: thumbnail,
				Kind:         model.AssetVideo,
				Provider:     a.GetChannelName(),
			}, nil
		case "failed":
			reason := job.Error
			if reason == "" {
				reason = "generation failed"
			}
			return nil, fmt.Errorf("%s job failed: %s", a.GetChannelName(), reason)
		}
		// queued / running keep polling.
	}
	return nil, fmt.Errorf("%s job timed out", a.GetChannelName())
}
