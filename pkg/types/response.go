package types

// SuccessEnvelope wraps JSON payloads on the API surface.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorPayload is the error body every failed request returns.
type ErrorPayload struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}
