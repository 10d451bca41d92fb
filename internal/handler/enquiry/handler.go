package enquiry

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/the247care/clinic-api/internal/email"
	"github.com/the247care/clinic-api/internal/handler"
	"github.com/the247care/clinic-api/internal/middleware"
	"github.com/the247care/clinic-api/internal/model"
	"github.com/the247care/clinic-api/internal/repository"
	"github.com/the247care/clinic-api/internal/service/doctor"
	"github.com/the247care/clinic-api/internal/service/enquiry"
	"github.com/the247care/clinic-api/pkg/logger"
)

type Handler struct {
	service    enquiry.Service
	doctors    doctor.Service
	outboxRepo repository.OutboxRepository
	notifier   email.Sender
	logger     *logger.Logger
}

func NewHandler(
	service enquiry.Service,
	doctors doctor.Service,
	outboxRepo repository.OutboxRepository,
	notifier email.Sender,
	log *logger.Logger,
) *Handler {
	return &Handler{
		service:    service,
		doctors:    doctors,
		outboxRepo: outboxRepo,
		notifier:   notifier,
		logger:     log,
	}
}

// RegisterPublicRoutes mounts the unauthenticated intake endpoint.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/enquiries", h.CreateEnquiry)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	enquiries := r.Group("/enquiries")
	{
		enquiries.GET("", h.ListEnquiries)
		enquiries.GET("/export", middleware.RequireRoles(model.UserRoleAdmin), h.ExportEnquiries)
		enquiries.GET("/me", middleware.RequireRoles(model.UserRoleDoctor), h.ListMyEnquiries)
		enquiries.GET("/:id", h.GetEnquiry)
		enquiries.PATCH("/:id", h.UpdateEnquiry)
		enquiries.DELETE("/:id", middleware.RequireRoles(model.UserRoleAdmin), h.DeleteEnquiry)
	}
}

func (h *Handler) CreateEnquiry(c *gin.Context) {
	var req model.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	enq, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventEnquiryCreated, enq)
	go h.notifier.NotifyNewEnquiry(enq)

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(enq))
}

func (h *Handler) GetEnquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid enquiry ID"))
		return
	}

	enq, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(enq))
}

func (h *Handler) UpdateEnquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid enquiry ID"))
		return
	}

	var req model.UpdateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	claims := middleware.ClaimsFrom(c)
	if claims != nil && claims.Role == model.UserRoleDoctor {
		if !h.authorizeDoctorPatch(c, id, &req, claims.DoctorID) {
			return
		}
	}

	enq, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventEnquiryUpdated, enq)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(enq))
}

// authorizeDoctorPatch enforces the doctor-portal restriction: doctors may
// only change status, and only on enquiries currently assigned to them.
// Writes the error response and returns false when the patch is rejected.
func (h *Handler) authorizeDoctorPatch(c *gin.Context, enquiryID uuid.UUID, req *model.UpdateEnquiryRequest, employeeID string) bool {
	if req.PatientName != nil || req.PatientAge != nil || req.PatientMob != nil ||
		req.PatientGender != nil || req.Message != nil || req.Service != nil ||
		req.Assignee.Set {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("doctors may only update enquiry status"))
		return false
	}

	doc, err := h.doctors.GetByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("doctor profile not found"))
		return false
	}

	enq, err := h.service.Get(c.Request.Context(), enquiryID)
	if err != nil {
		handler.Error(c, err)
		return false
	}
	if enq.AssigneeID == nil || *enq.AssigneeID != doc.ID {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("enquiry is not assigned to you"))
		return false
	}
	return true
}

func (h *Handler) DeleteEnquiry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid enquiry ID"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	h.writeOutboxEvent(c, model.EventEnquiryDeleted, map[string]interface{}{"id": id})

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "enquiry deleted successfully"}))
}

func (h *Handler) ListEnquiries(c *gin.Context) {
	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	page, err := h.service.List(c.Request.Context(), filters, p)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListMyEnquiries resolves the doctor from the token's employee code and
// lists enquiries assigned to them.
func (h *Handler) ListMyEnquiries(c *gin.Context) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || claims.DoctorID == "" {
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("no doctor profile linked to this account"))
		return
	}

	doc, err := h.doctors.GetByEmployeeID(c.Request.Context(), claims.DoctorID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	var p model.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	page, err := h.service.ListByAssignee(c.Request.Context(), doc.ID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ExportEnquiries returns every matching enquiry without pagination.
func (h *Handler) ExportEnquiries(c *gin.Context) {
	filters, ok := h.parseFilters(c)
	if !ok {
		return
	}

	enquiries, err := h.service.ListAll(c.Request.Context(), filters)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(enquiries))
}

func (h *Handler) parseFilters(c *gin.Context) (*model.EnquiryFilters, bool) {
	filters := &model.EnquiryFilters{}

	if status := c.Query("status"); status != "" {
		if !model.ValidEnquiryStatus(model.EnquiryStatus(status)) {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid status filter"))
			return nil, false
		}
		filters.Status = model.EnquiryStatus(status)
	}
	if assignee := c.Query("assignee"); assignee != "" {
		id, err := uuid.Parse(assignee)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid assignee filter"))
			return nil, false
		}
		filters.Assignee = &id
	}
	return filters, true
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
