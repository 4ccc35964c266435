package generate

// Request represents the request body for full generation
type Request struct {
	Handle string `json:"handle" binding:"required"`
}

// Response represents the full generation response
type Response struct {
	ImagePrompt string `json:"image_prompt"`
	ImageURL    string `json:"image_url"`
	Tier        string `json:"tier"`
}
