package common

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse represents a list response
type ListResponse struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// NewListResponse wraps items with their count
func NewListResponse(data interface{}, count int) *ListResponse {
	return &ListResponse{Data: data, Count: count}
}
