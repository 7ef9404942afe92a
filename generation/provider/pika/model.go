package pika

type GenerateRequest struct {
	PromptText string  `json:"promptText"`
	Options    Options `json:"options"`
}

type Options struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
	Duration    int    `json:"duration,omitempty"`
	Style       string `json:"style,omitempty"`
}

type GenerateResponse struct {
	JobId string `json:"job_id,omitempty"`
	Error string `json:"error,omitempty"`
}

type JobResponse struct {
	JobId        string `json:"job_id"`
	Status       string `json:"status"` // queued, running, finished, failed
	VideoUrl     string `json:"video_url,omitempty"`
	ThumbnailUrl string `json:"thumbnail_url,omitempty"`
	Error        string `json:"error,omitempty"`
}
