// Package generation tries a prioritized list of external providers and
// always produces exactly one asset for a prompt.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/fallback"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider/luma"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider/openaiimage"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider/pika"
	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/provider/runway"
)

var ErrEmptyPrompt = errors.New("prompt must not be empty")

// Orchestrator walks its adaptor list in order. Priority is whatever order
// the caller supplies, there is no reordering inside a run.
type Orchestrator struct {
	Adaptors []provider.Adaptor
	Fallback func(prompt string) *model.Asset
}

// NewOrchestrator wires the production priority chain: Runway, then Luma,
// then Pika, with the OpenAI still image as the final real attempt.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		Adaptors: []provider.Adaptor{
			runway.NewAdaptor(),
			luma.NewAdaptor(),
			pika.NewAdaptor(),
			openaiimage.NewAdaptor(),
		},
		Fallback: fallback.Pick,
	}
}

// Run attempts each configured adaptor in order and returns the first
// success. When everything fails (or nothing is configured) it returns the
// demo fallback with the collected diagnostics, which is still a non-error
// result: the only error Run itself produces is prompt validation.
func (o *Orchestrator) Run(ctx context.Context, request *model.Request) (*model.Result, error) {
	if strings.TrimSpace(request.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	var attempts []model.Attempt
	for _, adaptor := range o.Adaptors {
		if !adaptor.Configured() {
			continue
		}
		if ctx.Err() != nil {
			logger.Warn(ctx, "run budget exhausted, skipping remaining providers")
			break
		}

		name := adaptor.GetChannelName()
		logger.Infof(ctx, "attempting provider %s", name)
		asset, err := adaptor.Submit(ctx, request)
		if err != nil {
			logger.Warnf(ctx, "provider %s failed: %s", name, err.Error())
			attempts = append(attempts, model.Attempt{Provider: name, Reason: err.Error()})
			continue
		}

		asset.Provider = name
		logger.Infof(ctx, "provider %s succeeded", name)
		return &model.Result{
			Asset:    asset,
			Provider: name,
			Demo:     false,
			Errors:   attempts,
		}, nil
	}

	asset := o.Fallback(request.Prompt)
	logger.Info(ctx, fmt.Sprintf("all providers exhausted (%d attempted), returning %s demo asset",
		len(attempts), fallback.Category(request.Prompt)))
	return &model.Result{
		Asset:    asset,
		Provider: asset.Provider,
		Demo:     true,
		Errors:   attempts,
	}, nil
}
