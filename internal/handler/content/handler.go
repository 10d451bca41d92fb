package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/service/content"
)

type Handler struct {
	service content.Service
}

func NewHandler(service content.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read endpoints consumed by the public site.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	contentGroup := r.Group("/content")
	{
		contentGroup.GET("/services", h.ListServices)
		contentGroup.GET("/core-values", h.ListCoreValues)
		contentGroup.GET("/social-media", h.ListSocialMedia)
		contentGroup.GET("/leadership", h.ListLeadershipTeam)
		contentGroup.GET("/hero-discount", h.GetHeroDiscount)
	}
}

// RegisterRoutes mounts the write endpoints; the router wraps this group with
// admin-only enforcement.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	contentGroup := r.Group("/content")
	{
		contentGroup.POST("/services", h.CreateService)
		contentGroup.PUT("/services/:id", h.UpdateService)
		contentGroup.DELETE("/services/:id", h.DeleteService)

		contentGroup.POST("/core-values", h.CreateCoreValue)
		contentGroup.PUT("/core-values/:id", h.UpdateCoreValue)
		contentGroup.DELETE("/core-values/:id", h.DeleteCoreValue)

		contentGroup.POST("/social-media", h.CreateSocialMedia)
		contentGroup.PUT("/social-media/:id", h.UpdateSocialMedia)
		contentGroup.DELETE("/social-media/:id", h.DeleteSocialMedia)

		contentGroup.POST("/leadership", h.CreateLeadershipTeam)
		contentGroup.PUT("/leadership/:id", h.UpdateLeadershipTeam)
		contentGroup.DELETE("/leadership/:id", h.DeleteLeadershipTeam)

		contentGroup.PUT("/hero-discount", h.UpdateHeroDiscount)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}

// Services

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	svc, err := h.service.CreateService(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(svc))
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	svc, err := h.service.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(svc))
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "service deleted successfully"}))
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

// Core values

func (h *Handler) CreateCoreValue(c *gin.Context) {
	var req model.CreateCoreValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	cv, err := h.service.CreateCoreValue(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(cv))
}

func (h *Handler) UpdateCoreValue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateCoreValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	cv, err := h.service.UpdateCoreValue(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cv))
}

func (h *Handler) DeleteCoreValue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCoreValue(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "core value deleted successfully"}))
}

func (h *Handler) ListCoreValues(c *gin.Context) {
	values, err := h.service.ListCoreValues(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(values))
}

// Social media

func (h *Handler) CreateSocialMedia(c *gin.Context) {
	var req model.CreateSocialMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	sm, err := h.service.CreateSocialMedia(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(sm))
}

func (h *Handler) UpdateSocialMedia(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateSocialMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	sm, err := h.service.UpdateSocialMedia(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sm))
}

func (h *Handler) DeleteSocialMedia(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSocialMedia(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "social media link deleted successfully"}))
}

func (h *Handler) ListSocialMedia(c *gin.Context) {
	links, err := h.service.ListSocialMedia(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(links))
}

// Leadership team

func (h *Handler) CreateLeadershipTeam(c *gin.Context) {
	var req model.CreateLeadershipTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	lt, err := h.service.CreateLeadershipTeam(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(lt))
}

func (h *Handler) UpdateLeadershipTeam(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req model.UpdateLeadershipTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	lt, err := h.service.UpdateLeadershipTeam(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(lt))
}

func (h *Handler) DeleteLeadershipTeam(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteLeadershipTeam(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "leadership team entry deleted successfully"}))
}

func (h *Handler) ListLeadershipTeam(c *gin.Context) {
	entries, err := h.service.ListLeadershipTeam(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

// Hero discount

func (h *Handler) GetHeroDiscount(c *gin.Context) {
	hd, err := h.service.GetHeroDiscount(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hd))
}

func (h *Handler) UpdateHeroDiscount(c *gin.Context) {
	var req model.UpdateHeroDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	hd, err := h.service.UpdateHeroDiscount(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hd))
}
