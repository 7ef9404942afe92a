package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elhaiti30/short-form-video-blitz-sub000/common"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
)

// Adaptor is the uniform contract over one external generation backend. The
// async-job providers hide a submit-then-poll protocol behind Submit; the
// orchestrator only sees the final asset or a failure.
type Adaptor interface {
	GetChannelName() string
	Configured() bool
	Submit(ctx context.Context, request *model.Request) (*model.Asset, error)
}

// Doer lets tests inject a fake transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SleepFunc is the delay between poll attempts, injectable so tests don't
// wait out real intervals.
type SleepFunc func(d time.Duration)

// ThumbnailFunc derives a preview URL when the provider does not supply one.
type ThumbnailFunc func(assetURL string) string

// PollConfig bounds an adapter's poll loop. Keep MaxAttempts*Interval under
// the hosting platform's hard request limit.
type PollConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

func DefaultPollConfig() PollConfig {
	return PollConfig{
		MaxAttempts: config.MaxPollAttempts,
		Interval:    time.Duration(config.PollIntervalSeconds) * time.Second,
	}
}

func (p PollConfig) WithDefaults() PollConfig {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 120
	}
	if p.Interval <= 0 {
		p.Interval = 5 * time.Second
	}
	return p
}

// DefaultThumbnail assumes the provider's ".mp4" naming convention. Best
// effort only: unknown suffixes fall back to the asset URL itself.
func DefaultThumbnail(assetURL string) string {
	if strings.Contains(assetURL, ".mp4") {
		return strings.Replace(assetURL, ".mp4", "-thumbnail.jpg", 1)
	}
	return assetURL
}

// UpstreamFailure builds the diagnostic recorded for a rejected submit call:
// provider name, HTTP status and a truncated body excerpt.
func UpstreamFailure(channelName string, statusCode int, body []byte) error {
	return fmt.Errorf("%s request failed: status %d: %s",
		channelName, statusCode, common.TruncateString(strings.TrimSpace(string(body)), 200))
}

// ReadBody drains and closes an upstream response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
