package models

// ErrorResponse defines API error response format
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// TextResponse carries the human-readable result of a tool call
type TextResponse struct {
	Tool string `json:"tool"`
	Text string `json:"text"`
}
