package luma

type GenerationRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio,omitempty"`
	Loop        *bool  `json:"loop,omitempty"`
}

// GenerationResponse covers both the submit reply and the poll reply, Dream
// Machine returns the same generation object for both.
type GenerationResponse struct {
	ID            string  `json:"id"`
	State         string  `json:"state"` // queued, dreaming, completed, failed
	FailureReason *string `json:"failure_reason"`
	CreatedAt     string  `json:"created_at"`
	Assets        *Assets `json:"assets"`
}

type Assets struct {
	Video     string `json:"video,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}
