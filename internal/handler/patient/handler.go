package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/middleware"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/service/patient"
)

type Handler struct {
	service patient.Service
}

func NewHandler(service patient.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/export", middleware.RequireRoles(model.UserRoleAdmin), h.ExportPatients)
		patients.GET("/:mobile", h.GetPatient)
	}
}

func (h *Handler) ListPatients(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	page, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetPatient(c *gin.Context) {
	mobile := c.Param("mobile")
	if len(mobile) != 10 {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid mobile number"))
		return
	}

	p, err := h.service.GetByMobile(c.Request.Context(), mobile)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) ExportPatients(c *gin.Context) {
	patients, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}
