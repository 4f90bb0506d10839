package requests

// GenerateTextRequest is the JSON body for the text route.
type GenerateTextRequest struct {
	Prompt string `json:"prompt"`
}
