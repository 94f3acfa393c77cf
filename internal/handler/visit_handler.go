package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// ScheduleVisitRequest represents the request to schedule a visit
type ScheduleVisitRequest struct {
	ResidentID   uint   `json:"resident_id" binding:"required"`
	VisitorName  string `json:"visitor_name" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
	ScheduledAt  string `json:"scheduled_at" binding:"required"` // RFC 3339
	Notes        string `json:"notes"`
}

// UpdateVisitStatusRequest represents the request to change a visit's status
type UpdateVisitStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved completed cancelled"`
}

// VisitHandler handles visit-related HTTP requests
type VisitHandler struct {
	visitService service.VisitService
	logger       *logger.Logger
}

// NewVisitHandler creates a new VisitHandler instance
func NewVisitHandler(visitService service.VisitService, logger *logger.Logger) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		logger:       logger,
	}
}

// ScheduleVisit creates a new visit request
// @Summary Schedule visit
// @Description Schedule a family visit to a resident
// @Tags visits
// @Accept json
// @Produce json
// @Param request body ScheduleVisitRequest true "Visit details"
// @Success 201 {object} utils.APIResponse{data=models.Visit} "Visit scheduled successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/visits [post]
func (h *VisitHandler) ScheduleVisit(c *gin.Context) {
	var req ScheduleVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		utils.BadRequestResponse(c, "scheduled_at must be RFC 3339", err)
		return
	}

	visit := &models.Visit{
		ResidentID:   req.ResidentID,
		VisitorName:  req.VisitorName,
		Relationship: req.Relationship,
		ScheduledAt:  scheduledAt,
	}
	if req.Notes != "" {
		visit.Notes = &req.Notes
	}

	if err := h.visitService.ScheduleVisit(visit); err != nil {
		h.logger.WithError(err).Error("Failed to schedule visit")
		utils.BadRequestResponse(c, "Failed to schedule visit", err)
		return
	}

	utils.CreatedResponse(c, "Visit scheduled successfully", visit)
}

// GetVisitsByResident lists a resident's visits
// @Summary Get visits by resident
// @Description Get a resident's visits with pagination, newest first
// @Tags visits
// @Accept json
// @Produce json
// @Param resident_id path int true "Resident ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Visit} "Visits retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/visits/resident/{resident_id} [get]
func (h *VisitHandler) GetVisitsByResident(c *gin.Context) {
	residentID, err := utils.GetIDParam(c, "resident_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	page, perPage := utils.GetPaginationParams(c)

	visits, total, err := h.visitService.GetVisitsByResident(residentID, page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get visits")
		utils.InternalServerErrorResponse(c, "Failed to get visits", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Visits retrieved successfully", visits, page, perPage, total)
}

// UpdateVisitStatus moves a visit through its lifecycle
// @Summary Update visit status
// @Description Approve, complete or cancel a visit
// @Tags visits
// @Accept json
// @Produce json
// @Param id path int true "Visit ID"
// @Param request body UpdateVisitStatusRequest true "New status"
// @Success 200 {object} utils.APIResponse "Visit status updated successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request or transition"
// @Router /api/v1/visits/{id}/status [put]
func (h *VisitHandler) UpdateVisitStatus(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid visit ID", err)
		return
	}

	var req UpdateVisitStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.visitService.UpdateVisitStatus(id, req.Status); err != nil {
		h.logger.WithError(err).WithField("visit_id", id).Error("Failed to update visit status")
		utils.BadRequestResponse(c, "Failed to update visit status", err)
		return
	}

	utils.SuccessResponse(c, "Visit status updated successfully", nil)
}
