package models

// ErrorResponse is the standard error envelope for all endpoints.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"` // set for validation errors
}
