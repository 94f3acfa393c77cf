package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models/response"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// AdmitResidentRequest represents the request to admit a new resident
type AdmitResidentRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	RoomNumber       string `json:"room_number"`
	DateOfBirth      string `json:"date_of_birth"`                      // YYYY-MM-DD
	AdmissionDate    string `json:"admission_date" binding:"required"`  // YYYY-MM-DD
	EmergencyContact string `json:"emergency_contact"`
	CarePlanIDs      []uint `json:"care_plan_ids" binding:"required,min=1"`
	RoomTypeCode     string `json:"room_type_code"`
}

// ResidentHandler handles resident-related HTTP requests
type ResidentHandler struct {
	residentService service.ResidentService
	billingService  service.BillingService
	logger          *logger.Logger
}

// NewResidentHandler creates a new ResidentHandler instance
func NewResidentHandler(residentService service.ResidentService, billingService service.BillingService, logger *logger.Logger) *ResidentHandler {
	return &ResidentHandler{
		residentService: residentService,
		billingService:  billingService,
		logger:          logger,
	}
}

// ListResidents retrieves residents with pagination and search
// @Summary List residents
// @Description Get residents with pagination and optional search by name or ID
// @Tags residents
// @Accept json
// @Produce json
// @Param q query string false "Search by name or ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Resident} "Residents retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents [get]
func (h *ResidentHandler) ListResidents(c *gin.Context) {
	search := c.Query("q")
	page, perPage := utils.GetPaginationParams(c)

	residents, total, err := h.residentService.SearchResidents(search, page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list residents")
		utils.InternalServerErrorResponse(c, "Failed to list residents", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Residents retrieved successfully", residents, page, perPage, total)
}

// GetResident retrieves a resident by ID
// @Summary Get resident
// @Description Get a single resident by ID
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=models.Resident} "Resident retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 404 {object} utils.APIResponse "Resident not found"
// @Router /api/v1/residents/{id} [get]
func (h *ResidentHandler) GetResident(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	resident, err := h.residentService.GetResidentByID(id)
	if err != nil {
		utils.NotFoundResponse(c, "Resident not found")
		return
	}

	utils.SuccessResponse(c, "Resident retrieved successfully", resident)
}

// AdmitResident admits a new resident
// @Summary Admit resident
// @Description Create a resident, their care plan assignment and the prorated first invoice
// @Tags residents
// @Accept json
// @Produce json
// @Param request body AdmitResidentRequest true "Admission details"
// @Success 201 {object} utils.APIResponse "Resident admitted successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/admit [post]
func (h *ResidentHandler) AdmitResident(c *gin.Context) {
	var req AdmitResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	admissionDate, err := time.ParseInLocation("2006-01-02", req.AdmissionDate, time.Local)
	if err != nil {
		utils.BadRequestResponse(c, "admission_date must be YYYY-MM-DD", err)
		return
	}
	if admissionDate.Before(today()) {
		utils.BadRequestResponse(c, "admission_date must not be in the past", nil)
		return
	}

	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		dob, err := time.ParseInLocation("2006-01-02", req.DateOfBirth, time.Local)
		if err != nil {
			utils.BadRequestResponse(c, "date_of_birth must be YYYY-MM-DD", err)
			return
		}
		dateOfBirth = &dob
	}

	resident, bill, err := h.residentService.AdmitResident(service.AdmissionRequest{
		FullName:         req.FullName,
		RoomNumber:       req.RoomNumber,
		DateOfBirth:      dateOfBirth,
		AdmissionDate:    admissionDate,
		EmergencyContact: req.EmergencyContact,
		CarePlanIDs:      req.CarePlanIDs,
		RoomTypeCode:     req.RoomTypeCode,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to admit resident")
		utils.InternalServerErrorResponse(c, "Failed to admit resident", err)
		return
	}

	utils.CreatedResponse(c, "Resident admitted successfully", gin.H{
		"resident":      resident,
		"first_invoice": bill,
	})
}

// DischargeResident marks a resident as discharged
// @Summary Discharge resident
// @Description Set a resident's status to discharged
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse "Resident discharged successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/discharge [post]
func (h *ResidentHandler) DischargeResident(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	if err := h.residentService.DischargeResident(id); err != nil {
		h.logger.WithError(err).WithField("resident_id", id).Error("Failed to discharge resident")
		utils.InternalServerErrorResponse(c, "Failed to discharge resident", err)
		return
	}

	utils.SuccessResponse(c, "Resident discharged successfully", nil)
}

// ResidentBillsResponse bundles a resident's billing summary with the bills
type ResidentBillsResponse struct {
	Summary response.ResidentBillSummaryResponse `json:"summary"`
	Bills   []billing.EnhancedBill               `json:"bills"`
}

// GetResidentBills retrieves all enriched bills for a resident
// @Summary Get resident bills
// @Description Get every bill for a resident, enriched with derived status and line items, plus a summary
// @Tags residents
// @Accept json
// @Produce json
// @Param id path int true "Resident ID"
// @Success 200 {object} utils.APIResponse{data=ResidentBillsResponse} "Bills retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid resident ID"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/residents/{id}/bills [get]
func (h *ResidentHandler) GetResidentBills(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resident ID", err)
		return
	}

	bills, err := h.billingService.GetEnhancedBillsByResident(id)
	if err != nil {
		h.logger.WithError(err).WithField("resident_id", id).Error("Failed to get resident bills")
		utils.InternalServerErrorResponse(c, "Failed to get resident bills", err)
		return
	}

	summary := response.ResidentBillSummaryResponse{
		ResidentID: id,
		BillCount:  len(bills),
	}
	for _, bill := range bills {
		summary.ResidentName = bill.ResidentName
		summary.RoomNumber = bill.RoomNumber
		summary.TotalAmount += bill.Amount
		if bill.Status != billing.StatusPaid {
			summary.UnpaidCount++
		}
	}

	utils.SuccessResponse(c, "Bills retrieved successfully", ResidentBillsResponse{
		Summary: summary,
		Bills:   bills,
	})
}
