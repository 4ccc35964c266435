package reports

// Request represents the request body for report generation
type Request struct {
	Handle string `json:"handle" binding:"required"`
}

// RoastResponse represents the roast letter response
type RoastResponse struct {
	RoastLetter string `json:"roast_letter"`
}

// ProfileResponse represents the behavioral profile response
type ProfileResponse struct {
	ProfileReport string `json:"profile_report"`
}
