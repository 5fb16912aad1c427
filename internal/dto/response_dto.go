package dto

// ErrorResponse is the uniform error body. Code is a machine-readable reason
// present for recoverable domain rejections.
type ErrorResponse struct {
	Message string   `json:"message"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
