package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/service/auth"
)

type Handler struct {
	service auth.Service
}

func NewHandler(service auth.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts login and token refresh.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.Refresh)
	}
}

// RegisterRoutes mounts the admin-only register endpoint; role enforcement
// happens at the router.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/register", h.Register)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(user))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}
