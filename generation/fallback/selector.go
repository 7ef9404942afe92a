// Package fallback picks a pre-hosted demo asset for a prompt when every real
// provider has failed or none is configured.
package fallback

import (
	"strings"

	"github.com/elhaiti30/short-form-video-blitz-sub000/generation/model"
)

type category struct {
	name     string
	keywords []string
	videoUrl string
	thumbUrl string
}

// Evaluation order is fixed: urban, nature, character, then the generic
// motion sample. "rain" sits in the urban bucket, weather prompts share the
// city sample.
var categories = []category{
	{
		name:     "urban",
		keywords: []string{"rain", "weather", "city", "street", "urban", "traffic"},
		videoUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
		thumbUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ForBiggerJoyrides.jpg",
	},
	{
		name:     "nature",
		keywords: []string{"nature", "forest", "landscape", "mountain", "ocean", "wildlife"},
		videoUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		thumbUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/BigBuckBunny.jpg",
	},
	{
		name:     "character",
		keywords: []string{"walking", "person", "man", "woman", "people"},
		videoUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
		thumbUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ElephantsDream.jpg",
	},
}

var generic = category{
	name:     "motion",
	videoUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
	thumbUrl: "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/images/ForBiggerBlazes.jpg",
}

// Pick is pure and deterministic: the same prompt text always resolves to the
// same sample, case-insensitively, first matching category wins.
func Pick(prompt string) *model.Asset {
	matched := classify(prompt)
	return &model.Asset{
		URL:          matched.videoUrl,
		ThumbnailURL: matched.thumbUrl,
		Kind:         model.AssetVideo,
		Provider:     "demo",
		Demo:         true,
	}
}

// Category exposes the bucket name for logging and tests.
func Category(prompt string) string {
	return classify(prompt).name
}

func classify(prompt string) category {
	lowered := strings.ToLower(prompt)
	for _, c := range categories {
		for _, keyword := range c.keywords {
			if strings.Contains(lowered, keyword) {
				return c
			}
		}
	}
	return generic
}
