package handler

// errorResponse documents the error envelope rendered by the HTTP error
// handler.
type errorResponse struct {
	Error string `json:"error"`
}
