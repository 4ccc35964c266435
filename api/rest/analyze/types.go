package analyze

// Request represents the request body for account analysis
type Request struct {
	Handle     string `json:"handle" binding:"required"`
	SafetyMode bool   `json:"safety_mode"`
}

// Response represents the analysis response
type Response struct {
	ImagePrompt string `json:"image_prompt"`
}
