package openaiimage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/image"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/util"
)

// Adaptor is the last-resort degrade: a single synchronous image generation
// standing in for a video when no real video provider is available.
type Adaptor struct {
	APIKey  string
	BaseURL string
	Client  provider.Doer
}

func NewAdaptor() *Adaptor {
	return &Adaptor{
		APIKey:  config.OpenAIAPIKey,
		BaseURL: config.OpenAIBaseURL,
		Client:  util.HTTPClient,
	}
}

func (a *Adaptor) GetChannelName() string {
	return "OpenAI Image"
}

func (a *Adaptor) Configured() bool {
	return a.APIKey != ""
}

func (a *Adaptor) ConvertImageRequest(request *model.Request) *ImageRequest {
	size := "1792x1024"
	if request.Settings.AspectRatio() == "9:16" {
		size = "1024x1792"
	}
	return &ImageRequest{
		Model:  "dall-e-3",
		Prompt: request.Prompt,
		N:      1,
		Size:   size,
	}
}

func (a *Adaptor) Submit(ctx context.Context, request *model.Request) (*model.Asset, error) {
	jsonData, err := json.Marshal(a.ConvertImageRequest(request))
	if err != nil {
		return nil, errors.Wrap(err, "marshal image request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/v1/images/generations", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, errors.Wrap(err, "create image request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "image submit")
	}
	body, err := provider.ReadBody(resp)
	if err != nil {
		return nil, errors.Wrap(err, "read image response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	var imageResponse ImageResponse
	if err := json.Unmarshal(body, &imageResponse); err != nil {
		return nil, errors.Wrap(err, "parse image response")
	}
	if len(imageResponse.Data) == 0 || imageResponse.Data[0].Url == "" {
		return nil, provider.UpstreamFailure(a.GetChannelName(), resp.StatusCode, body)
	}

	imageUrl := imageResponse.Data[0].Url
	if config.DebugEnabled {
		if width, height, err := image.GetImageSizeFromUrl(imageUrl); err == nil {
			logger.Debug(ctx, fmt.Sprintf("generated still is %dx%d", width, height))
		}
	}

	// The raw image doubles as its own thumbnail.
	return &model.Asset{
		URL:          imageUrl,
		ThumbnailURL: imageUrl,
		Kind:         model.AssetStaticImage,
		Provider:     a.GetChannelName(),
	}, nil
}
