package api

// ErrorBody carries field-level validation details from the backend.
type ErrorBody struct {
	Details []ErrorDetail `json:"details"`
}

// ErrorDetail is a single validation message.
type ErrorDetail struct {
	Message string `json:"message"`
}
