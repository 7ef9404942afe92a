package model

// Settings is the caller-supplied configuration bag. None of the fields are
// validated, unknown or unset values fall through to provider defaults.
type Settings struct {
	Platform string `json:"platform,omitempty"`
	Duration int    `json:"duration,omitempty"`
	Style    string `json:"style,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Language string `json:"language,omitempty"`
	Voice    string `json:"voice,omitempty"`
	Industry string `json:"industry,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// AspectRatio maps the target platform to a frame orientation: vertical for
// short-form feeds, horizontal for everything else.
func (s Settings) AspectRatio() string {
	switch s.Platform {
	case "tiktok", "instagram":
		return "9:16"
	default:
		return "16:9"
	}
}

// ClampedDuration bounds the requested clip length to a provider's supported
// maximum, substituting the provider default when the caller left it unset.
func (s Settings) ClampedDuration(defaultSeconds, maxSeconds int) int {
	d := s.Duration
	if d <= 0 {
		d = defaultSeconds
	}
	if d > maxSeconds {
		d = maxSeconds
	}
	return d
}

// Request is one generation invocation. It is immutable for the duration of a
// run.
type Request struct {
	Prompt   string   `json:"prompt"`
	Settings Settings `json:"settings"`
}

type AssetKind string

const (
	AssetVideo       AssetKind = "video"
	AssetStaticImage AssetKind = "static_image"
)

// Asset is the single artifact a run produces.
type Asset struct {
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Kind         AssetKind `json:"kind"`
	Provider     string    `json:"provider"`
	Demo         bool      `json:"demo"`
}

// Attempt records one failed provider try. Successful attempts end the run
// and are carried on the Result instead.
type Attempt struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// Result is the outcome of one orchestration run. Asset is never nil: when
// every provider fails the fallback asset is attached with Demo set.
type Result struct {
	Asset    *Asset    `json:"asset"`
	Provider string    `json:"provider"`
	Demo     bool      `json:"demo"`
	Errors   []Attempt `json:"errors,omitempty"`
}

// ErrorReasons flattens the attempt list for API replies and log digests.
func (r *Result) ErrorReasons() []string {
	if len(r.Errors) == 0 {
		return nil
	}
	reasons := make([]string, 0, len(r.Errors))
	for _, attempt := range r.Errors {
		reasons = append(reasons, attempt.Provider+": "+attempt.Reason)
	}
	return reasons
}
