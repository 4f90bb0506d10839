package routes

import (
	"github.com/gin-gonic/gin"

	"genrelay/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates relay route registration.
type Routes struct {
	handlers *handlers.Provider
}

func New(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches the generation endpoints.
func (r *Routes) Register(router gin.IRouter) {
	router.POST("/generate-text", r.handlers.Generate.Text)
	router.POST("/generate-from-image", r.handlers.Generate.FromImage)
	router.POST("/generate-from-document", r.handlers.Generate.FromDocument)
	router.POST("/generate-from-audio", r.handlers.Generate.FromAudio)
}
