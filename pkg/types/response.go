package types

import "github.com/trendzapp/trendz-backend/pkg/query"

// ListPayload is the data shape for paginated listings.
type ListPayload struct {
	Meta   query.Meta `json:"meta"`
	Result any        `json:"result"`
}

// SuccessEnvelope is the uniform shape of every successful response.
type SuccessEnvelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorEnvelope is the uniform shape of every failed response. Data is only
// populated for the empty-result case, which returns an empty slice.
type ErrorEnvelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	Data       any    `json:"data,omitempty"`
}
