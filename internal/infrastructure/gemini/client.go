package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"genrelay/internal/config"
	"genrelay/internal/domain/generation"
)

// Client wraps the Gemini SDK behind the domain Generator interface.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient constructs the Gemini client from configuration.
func NewClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.GeminiModel,
		timeout: cfg.GenerateTimeout,
		log:     log.With().Str("component", "gemini-client").Logger(),
	}, nil
}

// Generate relays the prompt, optionally paired with one inline binary part,
// and returns the concatenated text of the first candidate. The call is
// bounded by the configured timeout.
func (c *Client) Generate(ctx context.Context, prompt string, part *generation.InlinePart) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	parts := []*genai.Part{{Text: prompt}}
	if part != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: part.MIMEType,
				Data:     part.Data,
			},
		})
	}
	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}

	c.log.Debug().
		Str("model", c.model).
		Int("prompt_chars", len(prompt)).
		Bool("inline_part", part != nil).
		Msg("relaying generation request")

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("gemini %s: request timed out: %w", generation.ProviderErrorMarker, err)
		}
		return "", fmt.Errorf("gemini %s: %w", generation.ProviderErrorMarker, err)
	}

	return extractText(resp)
}

// extractText pulls the text parts out of the first candidate and maps
// blocked or empty responses to errors.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini %s: response contained no candidates", generation.ProviderErrorMarker)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("gemini %s: response blocked by safety filter", generation.ProviderErrorMarker)
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("gemini %s: response contained no content", generation.ProviderErrorMarker)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("gemini %s: response contained no text parts", generation.ProviderErrorMarker)
	}
	return sb.String(), nil
}
