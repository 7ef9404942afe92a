package runway

// VideoGenerationRequest is the submit payload for the Gen-3 text-to-video
// endpoint.
type VideoGenerationRequest struct {
	Model      string `json:"model"`
	PromptText string `json:"promptText,omitempty"`
	Seed       int    `json:"seed,omitempty"`
	Watermark  bool   `json:"watermark,omitempty"`
	Duration   int    `json:"duration,omitempty"`
	Ratio      string `json:"ratio,omitempty"`
}

type VideoResponse struct {
	Id    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type VideoFinalResponse struct {
	ID        string   `json:"id"`
	Status    string   `json:"status"`
	CreatedAt string   `json:"createdAt"`
	Output    []string `json:"output,omitempty"`
	Failure   string   `json:"failure,omitempty"`
}
