package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"genrelay/internal/domain/generation"
)

func TestExtractTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{Text: "The image shows "},
						{Text: "a red panda."},
					},
				},
			},
		},
	}

	out, err := extractText(resp)
	require.NoError(t, err)
	assert.Equal(t, "The image shows a red panda.", out)
}

func TestExtractTextNoCandidates(t *testing.T) {
	_, err := extractText(&genai.GenerateContentResponse{})
	assert.ErrorContains(t, err, generation.ProviderErrorMarker)

	_, err = extractText(nil)
	assert.ErrorContains(t, err, generation.ProviderErrorMarker)
}

func TestExtractTextSafetyBlocked(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{FinishReason: genai.FinishReasonSafety},
		},
	}

	_, err := extractText(resp)
	assert.ErrorContains(t, err, "safety")
	assert.ErrorContains(t, err, generation.ProviderErrorMarker)
}

func TestExtractTextEmptyContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{InlineData: &genai.Blob{MIMEType: "image/png"}}}}},
		},
	}

	_, err := extractText(resp)
	assert.ErrorContains(t, err, "no text parts")
}
