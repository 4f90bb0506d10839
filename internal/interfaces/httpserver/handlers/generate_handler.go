package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"genrelay/internal/domain/generation"
	"genrelay/internal/infrastructure/metrics"
	"genrelay/internal/infrastructure/upload"
	"genrelay/internal/interfaces/httpserver/requests"
	"genrelay/internal/interfaces/httpserver/responses"
)

// GenerateHandler exposes the generation relay endpoints.
type GenerateHandler struct {
	service *generation.Service
	uploads generation.UploadStore
	log     zerolog.Logger
}

func NewGenerateHandler(service *generation.Service, uploads generation.UploadStore, log zerolog.Logger) *GenerateHandler {
	return &GenerateHandler{
		service: service,
		uploads: uploads,
		log:     log.With().Str("component", "generate-handler").Logger(),
	}
}

// Text godoc
// @Summary      Generate text from a prompt
// @Description  Relays a plain text prompt to the model and returns the generated text.
// @Tags         generate
// @Accept       json
// @Produce      json
// @Param        request  body      requests.GenerateTextRequest  true  "Prompt"
// @Success      200      {object}  responses.GenerateResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /generate-text [post]
func (h *GenerateHandler) Text(c *gin.Context) {
	var req requests.GenerateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
		return
	}

	h.relay(c, "text", func(ctx context.Context) (string, error) {
		return h.service.GenerateText(ctx, req.Prompt)
	})
}

// FromImage godoc
// @Summary      Generate text from an image
// @Description  Accepts a multipart image upload with an optional prompt and returns the model's description.
// @Tags         generate
// @Accept       multipart/form-data
// @Produce      json
// @Param        image   formData  file    true   "Image file (png, jpeg, gif, webp)"
// @Param        prompt  formData  string  false  "Prompt, defaults to 'Describe the image'"
// @Success      200     {object}  responses.GenerateResponse
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      500     {object}  responses.ErrorResponse
// @Router       /generate-from-image [post]
func (h *GenerateHandler) FromImage(c *gin.Context) {
	up, ok := h.saveUpload(c, "image")
	if !ok {
		return
	}
	prompt := c.PostForm("prompt")

	h.relay(c, "image", func(ctx context.Context) (string, error) {
		return h.service.DescribeImage(ctx, up, prompt)
	})
}

// FromDocument godoc
// @Summary      Generate text from a document
// @Description  Accepts a multipart document upload and returns the model's analysis.
// @Tags         generate
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "Document file"
// @Success      200       {object}  responses.GenerateResponse
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /generate-from-document [post]
func (h *GenerateHandler) FromDocument(c *gin.Context) {
	up, ok := h.saveUpload(c, "document")
	if !ok {
		return
	}

	h.relay(c, "document", func(ctx context.Context) (string, error) {
		return h.service.AnalyzeDocument(ctx, up)
	})
}

// FromAudio godoc
// @Summary      Generate text from audio
// @Description  Accepts a multipart audio upload and returns the model's transcription or analysis.
// @Tags         generate
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio  formData  file  true  "Audio file"
// @Success      200    {object}  responses.GenerateResponse
// @Failure      400    {object}  responses.ErrorResponse
// @Failure      500    {object}  responses.ErrorResponse
// @Router       /generate-from-audio [post]
func (h *GenerateHandler) FromAudio(c *gin.Context) {
	up, ok := h.saveUpload(c, "audio")
	if !ok {
		return
	}

	h.relay(c, "audio", func(ctx context.Context) (string, error) {
		return h.service.TranscribeAudio(ctx, up)
	})
}

// saveUpload extracts the named multipart file and persists it to temporary
// storage. Responds with 400 when the field is absent.
func (h *GenerateHandler) saveUpload(c *gin.Context, field string) (*generation.TempUpload, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "no " + field + " file uploaded"})
		return nil, false
	}
	up, err := h.uploads.Save(fileHeader)
	if err != nil {
		h.log.Error().Err(err).Str("field", field).Msg("save upload failed")
		status := http.StatusInternalServerError
		if errors.Is(err, upload.ErrTooLarge) {
			status = http.StatusBadRequest
		}
		c.JSON(status, responses.ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return up, true
}

func (h *GenerateHandler) relay(c *gin.Context, route string, generate func(ctx context.Context) (string, error)) {
	start := time.Now()
	output, err := generate(c.Request.Context())
	if err != nil {
		// Validation rejections never reached the provider; keep them out
		// of the generation counters and latency histogram.
		var unsupported *generation.UnsupportedMediaTypeError
		if errors.Is(err, generation.ErrPromptRequired) || errors.As(err, &unsupported) {
			c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: err.Error()})
			return
		}
		metrics.GenerationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RecordGeneration(route, "error")
		h.log.Error().Err(err).Str("route", route).Msg("generation failed")
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: err.Error()})
		return
	}

	metrics.GenerationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	metrics.RecordGeneration(route, "success")
	c.JSON(http.StatusOK, responses.GenerateResponse{Output: output})
}
