package synthesize

// Request represents the request body for image synthesis
type Request struct {
	Prompt string `json:"prompt" binding:"required"`
	Handle string `json:"handle" binding:"required"`
}

// Response represents the synthesis response
type Response struct {
	ImageURL string `json:"image_url"`
	Tier     string `json:"tier"`
}
