package types

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the uniform wrapper returned by every API operation.
// StatusCode always drives the HTTP response code.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	Data       any    `json:"data"`
}
