package types

// APIResponse is the standard response envelope. Successful data responses
// carry a source discriminator telling the client which backend (database
// or mock) produced the payload.
type APIResponse struct {
	Success bool        `json:"success"`
	Source  Source      `json:"source,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewDataResponse creates a successful response annotated with the backend
// that served it.
func NewDataResponse(source Source, data interface{}) *APIResponse {
	return &APIResponse{
		Success: true,
		Source:  source,
		Data:    data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// Common error codes
const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeInternal   = "INTERNAL_ERROR"
	ErrorCodeRateLimit  = "RATE_LIMIT_EXCEEDED"
)
