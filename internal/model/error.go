package model

// ErrorResponse is the standard error body returned by the API.
type ErrorResponse struct {
	Code     int    `json:"code"`
	Category string `json:"category"`
	Message  string `json:"message"`
}
