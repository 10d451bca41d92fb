package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/service/dashboard"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetStats)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
