package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/models/response"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// ConfirmPaymentRequest represents the request to confirm bill payments
type ConfirmPaymentRequest struct {
	BillIDs []uint `json:"bill_ids" binding:"required,min=1"`
	Method  string `json:"method" binding:"required"` // e.g. bank_transfer, cash
}

// ProrationPreviewRequest represents the request for a first-invoice preview
type ProrationPreviewRequest struct {
	AdmissionDate string `json:"admission_date" binding:"required"` // YYYY-MM-DD
	MonthlyTotal  int64  `json:"monthly_total" binding:"required,min=0"`
}

// BillingHandler handles billing-related HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// parseBillFilter builds a repository filter from query parameters
func parseBillFilter(c *gin.Context) (repository.BillFilter, error) {
	var filter repository.BillFilter

	month, err := utils.GetIntQuery(c, "month")
	if err != nil {
		return filter, err
	}
	year, err := utils.GetIntQuery(c, "year")
	if err != nil {
		return filter, err
	}
	if month != nil && (*month < 1 || *month > 12) {
		return filter, fmt.Errorf("month must be between 1 and 12")
	}

	filter.Month = month
	filter.Year = year
	filter.UnpaidOnly = c.Query("unpaid") == "true"

	if raw := c.Query("resident_id"); raw != "" {
		id, err := utils.GetIntQuery(c, "resident_id")
		if err != nil || *id <= 0 {
			return filter, fmt.Errorf("invalid resident_id parameter")
		}
		residentID := uint(*id)
		filter.ResidentID = &residentID
	}

	return filter, nil
}

// ListBills retrieves bills with derived status and line items
// @Summary List bills
// @Description Get bills enriched with derived status, line items and resident labels. Supports month, year, resident_id and unpaid filters plus pagination.
// @Tags bills
// @Accept json
// @Produce json
// @Param month query int false "Filter by due month (1-12)"
// @Param year query int false "Filter by due year"
// @Param resident_id query int false "Filter by resident"
// @Param unpaid query bool false "Only bills without a paid date"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]billing.EnhancedBill} "Bills retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills [get]
func (h *BillingHandler) ListBills(c *gin.Context) {
	filter, err := parseBillFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid filter parameters", err)
		return
	}

	page, perPage := utils.GetPaginationParams(c)

	bills, total, err := h.billingService.ListEnhancedBills(filter, page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list bills")
		utils.InternalServerErrorResponse(c, "Failed to list bills", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Bills retrieved successfully", bills, page, perPage, total)
}

// GetBill retrieves a single enriched bill
// @Summary Get bill
// @Description Get a single bill enriched with derived status and line items
// @Tags bills
// @Accept json
// @Produce json
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.APIResponse{data=billing.EnhancedBill} "Bill retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid bill ID"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Router /api/v1/bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid bill ID", err)
		return
	}

	bill, err := h.billingService.GetEnhancedBill(id)
	if err != nil {
		h.logger.WithError(err).WithField("bill_id", id).Error("Failed to get bill")
		utils.NotFoundResponse(c, "Bill not found")
		return
	}

	utils.SuccessResponse(c, "Bill retrieved successfully", bill)
}

// ConfirmPayment marks bills as paid
// @Summary Confirm bill payments
// @Description Mark the given bills as paid with the supplied payment method
// @Tags bills
// @Accept json
// @Produce json
// @Param request body ConfirmPaymentRequest true "Bill IDs and payment method"
// @Success 200 {object} utils.APIResponse "Payments confirmed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/confirm-payment [post]
func (h *BillingHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	if err := h.billingService.ConfirmPayment(req.BillIDs, req.Method); err != nil {
		h.logger.WithError(err).Error("Failed to confirm payments")
		utils.InternalServerErrorResponse(c, "Failed to confirm payments", err)
		return
	}

	utils.SuccessResponse(c, "Payments confirmed successfully", nil)
}

// GetStatistics retrieves aggregate billing figures
// @Summary Get billing statistics
// @Description Get paid/pending/overdue counts and amount totals for bills matching the filter
// @Tags bills
// @Accept json
// @Produce json
// @Param month query int false "Filter by due month (1-12)"
// @Param year query int false "Filter by due year"
// @Param resident_id query int false "Filter by resident"
// @Success 200 {object} utils.APIResponse{data=response.BillingStatisticsResponse} "Statistics retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/statistics [get]
func (h *BillingHandler) GetStatistics(c *gin.Context) {
	filter, err := parseBillFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid filter parameters", err)
		return
	}

	stats, err := h.billingService.GetBillingStatistics(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get billing statistics")
		utils.InternalServerErrorResponse(c, "Failed to get billing statistics", err)
		return
	}

	utils.SuccessResponse(c, "Statistics retrieved successfully", stats)
}

// ExportBills exports bills to an Excel file
// @Summary Export bills to Excel
// @Description Download bills matching the filter as an xlsx file
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month query int false "Filter by due month (1-12)"
// @Param year query int false "Filter by due year"
// @Param resident_id query int false "Filter by resident"
// @Success 200 {file} binary "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/export [get]
func (h *BillingHandler) ExportBills(c *gin.Context) {
	filter, err := parseBillFilter(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid filter parameters", err)
		return
	}

	content, filename, err := h.billingService.ExportBillsToExcel(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export bills")
		utils.InternalServerErrorResponse(c, "Failed to export bills", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

// PreviewProration computes first-invoice figures without persisting
// @Summary Preview first-invoice proration
// @Description Compute the prorated partial month, deposit and total for an admission date without creating a bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body ProrationPreviewRequest true "Admission date and monthly total"
// @Success 200 {object} utils.APIResponse{data=response.FirstInvoicePreviewResponse} "Proration computed"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/bills/proration-preview [post]
func (h *BillingHandler) PreviewProration(c *gin.Context) {
	var req ProrationPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
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

	invoice := h.billingService.PreviewFirstInvoice(admissionDate, req.MonthlyTotal)
	utils.SuccessResponse(c, "Proration computed successfully", response.FirstInvoicePreviewResponse{
		PartialMonthAmount: invoice.PartialMonthAmount,
		DepositAmount:      invoice.DepositAmount,
		TotalAmount:        invoice.TotalAmount,
		DueDate:            invoice.DueDate.Format(time.RFC3339),
		DaysInMonth:        invoice.DaysInMonth,
		RemainingDays:      invoice.RemainingDays,
		DailyRate:          invoice.DailyRate,
	})
}

// today returns midnight of the current local day
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}
