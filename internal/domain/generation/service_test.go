package generation_test

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genrelay/internal/domain/generation"
)

// mockGenerator is a hand-written test double for the external model call.
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string, part *generation.InlinePart) (string, error)

	calls      int
	lastPrompt string
	lastPart   *generation.InlinePart
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string, part *generation.InlinePart) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastPart = part
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, part)
	}
	return "generated text", nil
}

// mockStore tracks reads and removals without touching the filesystem.
type mockStore struct {
	ReadFunc func(upload *generation.TempUpload) ([]byte, error)

	removed []string
}

func (m *mockStore) Save(_ *multipart.FileHeader) (*generation.TempUpload, error) {
	panic("not used in service tests")
}

func (m *mockStore) Read(upload *generation.TempUpload) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(upload)
	}
	return []byte("file-bytes"), nil
}

func (m *mockStore) Remove(upload *generation.TempUpload) error {
	m.removed = append(m.removed, upload.Path)
	return nil
}

func newService(gen *mockGenerator, store *mockStore) *generation.Service {
	return generation.NewService(gen, store, zerolog.Nop())
}

func TestGenerateTextPassThrough(t *testing.T) {
	gen := &mockGenerator{
		GenerateFunc: func(context.Context, string, *generation.InlinePart) (string, error) {
			return "mocked output", nil
		},
	}
	svc := newService(gen, &mockStore{})

	out, err := svc.GenerateText(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "mocked output", out)
	assert.Equal(t, "hello", gen.lastPrompt)
	assert.Nil(t, gen.lastPart)
}

func TestGenerateTextRejectsBlankPrompt(t *testing.T) {
	gen := &mockGenerator{}
	svc := newService(gen, &mockStore{})

	_, err := svc.GenerateText(context.Background(), "   ")
	assert.ErrorIs(t, err, generation.ErrPromptRequired)
	assert.Zero(t, gen.calls)
}

func TestDescribeImageRejectsUnsupportedMIME(t *testing.T) {
	gen := &mockGenerator{}
	store := &mockStore{}
	svc := newService(gen, store)

	up := &generation.TempUpload{Path: "/tmp/x", MIMEType: "application/pdf"}
	_, err := svc.DescribeImage(context.Background(), up, "")

	var unsupported *generation.UnsupportedMediaTypeError
	require.ErrorAs(t, err, &unsupported)
	for _, allowed := range generation.AllowedImageMIMEs {
		assert.Contains(t, err.Error(), allowed)
	}
	assert.Zero(t, gen.calls)
	assert.Equal(t, []string{"/tmp/x"}, store.removed, "upload must be released on rejection")
}

func TestDescribeImageDefaultsPrompt(t *testing.T) {
	gen := &mockGenerator{}
	store := &mockStore{}
	svc := newService(gen, store)

	up := &generation.TempUpload{Path: "/tmp/y", MIMEType: "image/png"}
	out, err := svc.DescribeImage(context.Background(), up, "")
	require.NoError(t, err)

	assert.Equal(t, "generated text", out)
	assert.Equal(t, generation.DefaultImagePrompt, gen.lastPrompt)
	require.NotNil(t, gen.lastPart)
	assert.Equal(t, "image/png", gen.lastPart.MIMEType)
	assert.Equal(t, []byte("file-bytes"), gen.lastPart.Data)
	assert.Equal(t, []string{"/tmp/y"}, store.removed)
}

func TestDescribeImageKeepsExplicitPrompt(t *testing.T) {
	gen := &mockGenerator{}
	svc := newService(gen, &mockStore{})

	up := &generation.TempUpload{Path: "/tmp/z", MIMEType: "image/jpeg"}
	_, err := svc.DescribeImage(context.Background(), up, "What breed is this dog?")
	require.NoError(t, err)
	assert.Equal(t, "What breed is this dog?", gen.lastPrompt)
}

func TestAnalyzeDocumentReleasesOnProviderFailure(t *testing.T) {
	gen := &mockGenerator{
		GenerateFunc: func(context.Context, string, *generation.InlinePart) (string, error) {
			return "", errors.New("gemini generation failed: quota exceeded")
		},
	}
	store := &mockStore{}
	svc := newService(gen, store)

	up := &generation.TempUpload{Path: "/tmp/doc", MIMEType: "application/pdf"}
	_, err := svc.AnalyzeDocument(context.Background(), up)

	assert.Error(t, err)
	assert.Equal(t, generation.DocumentInstruction, gen.lastPrompt)
	assert.Equal(t, []string{"/tmp/doc"}, store.removed)
}

func TestTranscribeAudioForwardsInstruction(t *testing.T) {
	gen := &mockGenerator{}
	store := &mockStore{}
	svc := newService(gen, store)

	up := &generation.TempUpload{Path: "/tmp/audio", MIMEType: "audio/mpeg"}
	out, err := svc.TranscribeAudio(context.Background(), up)
	require.NoError(t, err)

	assert.Equal(t, "generated text", out)
	assert.Equal(t, generation.AudioInstruction, gen.lastPrompt)
	require.NotNil(t, gen.lastPart)
	assert.Equal(t, "audio/mpeg", gen.lastPart.MIMEType)
	assert.Equal(t, []string{"/tmp/audio"}, store.removed)
}

func TestGenerateFromUploadReadFailure(t *testing.T) {
	gen := &mockGenerator{}
	store := &mockStore{
		ReadFunc: func(*generation.TempUpload) ([]byte, error) {
			return nil, errors.New("disk gone")
		},
	}
	svc := newService(gen, store)

	up := &generation.TempUpload{Path: "/tmp/gone", MIMEType: "image/png"}
	_, err := svc.DescribeImage(context.Background(), up, "prompt")

	assert.ErrorContains(t, err, "read upload")
	assert.Zero(t, gen.calls)
	assert.Equal(t, []string{"/tmp/gone"}, store.removed)
}
