package responses

// GenerateResponse carries the relayed model output.
type GenerateResponse struct {
	Output string `json:"output"`
}

// ErrorResponse carries a request failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}
