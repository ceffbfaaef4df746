package http

// APIResponse represents standard API response.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// APIResponse400Err represents 400 error response.
type APIResponse400Err struct {
	Status  int               `json:"status" example:"400"`
	Message string            `json:"message" example:"Bad Request"`
	Data    []ValidationError `json:"data,omitempty"`
}

// APIResponse503Err represents the response served before the first dataset load.
type APIResponse503Err struct {
	Status  int         `json:"status" example:"503"`
	Message string      `json:"message" example:"Service Unavailable"`
	Data    []*AppError `json:"data,omitempty"`
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_ONEOF"`
	Field   string                 `json:"field,omitempty" example:"TF"`
	Message string                 `json:"message,omitempty" example:"TF must be one of: 6m, 1y, 2y, 5y, all"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
