package doctor

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/middleware"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	"github.com/the247care/clinic-api/internal/service/doctor"
	"github.com/the247care/clinic-api/pkg/logger"
)

type Handler struct {
	service    doctor.Service
	outboxRepo repository.OutboxRepository
	logger     *logger.Logger
}

func NewHandler(service doctor.Service, outboxRepo repository.OutboxRepository, log *logger.Logger) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo, logger: log}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/export", middleware.RequireRoles(model.UserRoleAdmin), h.ExportDoctors)
		doctors.POST("", middleware.RequireRoles(model.UserRoleAdmin), h.CreateDoctor)
		doctors.POST("/bulk", middleware.RequireRoles(model.UserRoleAdmin), h.CreateDoctorsBulk)

		doctors.GET("/me", middleware.RequireRoles(model.UserRoleDoctor), h.GetProfile)
		doctors.PUT("/me", middleware.RequireRoles(model.UserRoleDoctor), h.UpdateProfile)
		doctors.PUT("/me/availability", middleware.RequireRoles(model.UserRoleDoctor), h.UpdateAvailability)

		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", middleware.RequireRoles(model.UserRoleAdmin), h.UpdateDoctor)
		doctors.DELETE("/:id", middleware.RequireRoles(model.UserRoleAdmin), h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doc, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventDoctorCreated, doc)

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doc))
}

func (h *Handler) CreateDoctorsBulk(c *gin.Context) {
	var req model.BulkCreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctors, err := h.service.CreateBulk(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	for _, doc := range doctors {
		h.writeOutboxEvent(c, model.EventDoctorCreated, doc)
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	doc, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doc, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventDoctorUpdated, doc)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventDoctorDeleted, map[string]interface{}{"id": id})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "doctor deleted successfully"}))
}

func (h *Handler) ListDoctors(c *gin.Context) {
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

func (h *Handler) ExportDoctors(c *gin.Context) {
	doctors, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

// GetProfile returns the doctor linked to the authenticated account.
func (h *Handler) GetProfile(c *gin.Context) {
	doc, ok := h.selfDoctor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doc))
}

// UpdateProfile lets a doctor edit their own record. The employee code is
// immutable through this path.
func (h *Handler) UpdateProfile(c *gin.Context) {
	doc, ok := h.selfDoctor(c)
	if !ok {
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	req.EmployeeID = nil

	updated, err := h.service.Update(c.Request.Context(), doc.ID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventDoctorUpdated, updated)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) UpdateAvailability(c *gin.Context) {
	doc, ok := h.selfDoctor(c)
	if !ok {
		return
	}

	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.UpdateAvailability(c.Request.Context(), doc.ID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventDoctorUpdated, updated)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

func (h *Handler) selfDoctor(c *gin.Context) (*model.Doctor, bool) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.DoctorID == "" {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no doctor profile linked to this account"))
		return nil, false
	}

	doc, err := h.service.GetByEmployeeID(c.Request.Context(), claims.DoctorID)
	if err != nil {
		handler.Error(c, err)
		return nil, false
	}
	return doc, true
}

func (h *Handler) writeOutboxEvent(c *gin.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error(err, "failed to marshal outbox payload", "event_type", eventType)
		return
	}
	event := &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   data,
	}
	if err := h.outboxRepo.Create(c.Request.Context(), event); err != nil {
		h.logger.Error(err, "failed to create outbox event", "event_type", eventType)
	}
}
