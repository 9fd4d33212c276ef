package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	publicHandler publicHandler
	authHandler   authHandler
	adminHandler  adminHandler
	healthHandler healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Failed to create post: missing required field"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title_en"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
