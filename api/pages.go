package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PageHandler struct {
	renderer
}

func NewPageHandler(log *zap.Logger) *PageHandler {
	return &PageHandler{renderer: newRenderer(log)}
}

func (h *PageHandler) Register(router gin.IRoutes) {
	router.GET("/", h.landing)
}

func (h *PageHandler) landing(c *gin.Context) {
	h.page(c, http.StatusOK, "landing.html", gin.H{"Title": "Welcome"})
}
