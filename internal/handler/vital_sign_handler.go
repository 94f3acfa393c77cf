package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// RecordVitalSignRequest represents the request to record a measurement
type RecordVitalSignRequest struct {
	ResidentID  uint     `json:"resident_id" binding:"required"`
	MeasuredAt  string   `json:"measured_at" binding:"required"` // RFC 3339
	Systolic    *int     `json:"systolic"`
	Diastolic   *int     `json:"diastolic"`
	HeartRate   *int     `json:"heart_rate"`
	Temperature *float64 `json:"temperature"`
	SpO2        *int     `json:"spo2"`
	Notes       string   `json:"notes"`
	RecordedBy  string   `json:"recorded_by"`
}

// VitalSignHandler handles vital sign HTTP requests
type VitalSignHandler struct {
	vitalSignService service.VitalSignService
	logger           *logger.Logger
}

// NewVitalSignHandler creates a new VitalSignHandler instance
func NewVitalSignHandler(vitalSignService service.VitalSignService, logger *logger.Logger) *VitalSignHandler {
	return &VitalSignHandler{
		vitalSignService: vitalSignService,
		logger:           logger,
	}
}

// RecordVitalSign stores a new measurement
// @Summary Record vital sign
// @Description Record a vital sign measurement for a resident
// @Tags vitals
// @Accept json
// @Produce json
// @Param request body RecordVitalSignRequest true "Measurement details"
// @Success 201 {object} utils.APIResponse{data=models.VitalSign} "Vital sign recorded successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/vitals [post]
func (h *VitalSignHandler) RecordVitalSign(c *gin.Context) {
	var req RecordVitalSignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	measuredAt, err := time.Parse(time.RFC3339, req.MeasuredAt)
	if err != nil {
		utils.BadRequestResponse(c, "measured_at must be RFC 3339", err)
		return
	}

	vital := &models.VitalSign{
		ResidentID:  req.ResidentID,
		MeasuredAt:  measuredAt,
		Systolic:    req.Systolic,
		Diastolic:   req.Diastolic,
		HeartRate:   req.HeartRate,
		Temperature: req.Temperature,
		SpO2:        req.SpO2,
	}
	if req.Notes != "" {
		vital.Notes = &req.Notes
	}
	if req.RecordedBy != "" {
		vital.RecordedBy = &req.RecordedBy
	}

	if err := h.vitalSignService.RecordVitalSign(vital); err != nil {
		h.logger.WithError(err).Error("Failed to record vital sign")
		utils.BadRequestResponse(c, "Failed to record vital sign", err)
		return
	}

	utils.CreatedResponse(c, "Vital sign recorded successfully", vital)
}

// GetVitalSignsByResident lists a resident's measurements
// @Summary Get vital signs by resident
// @Description Get a resident's vital signs with pagination, newest first
// @Tags vitals
// @Accept json
// @Produce json
// @Param resident_id path int true "Resident ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.VitalSign} "Vital signs retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/vitals/resident/{resident_id} [get]
func (h *VitalSignHandler) GetVitalSignsByResident(c *gin.Context) {
	residentID, err := utils.GetIDParam(c, "resident_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	page, perPage := utils.GetPaginationParams(c)

	vitals, total, err := h.vitalSignService.GetVitalSignsByResident(residentID, page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get vital signs")
		utils.InternalServerErrorResponse(c, "Failed to get vital signs", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Vital signs retrieved successfully", vitals, page, perPage, total)
}

// GetLatestVitalSign returns the most recent measurement for a resident
// @Summary Get latest vital sign
// @Description Get the most recent vital sign measurement for a resident
// @Tags vitals
// @Accept json
// @Produce json
// @Param resident_id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=models.VitalSign} "Vital sign retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 404 {object} utils.APIResponse "No measurements found"
// @Router /api/v1/vitals/resident/{resident_id}/latest [get]
func (h *VitalSignHandler) GetLatestVitalSign(c *gin.Context) {
	residentID, err := utils.GetIDParam(c, "resident_id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	vital, err := h.vitalSignService.GetLatestVitalSign(residentID)
	if err != nil {
		utils.NotFoundResponse(c, "No measurements found")
		return
	}

	utils.SuccessResponse(c, "Vital sign retrieved successfully", vital)
}
