package handler

import (
	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// CatalogHandler serves the read-only care plan and room type catalogs
type CatalogHandler struct {
	carePlanRepo repository.CarePlanRepository
	logger       *logger.Logger
}

// NewCatalogHandler creates a new CatalogHandler instance
func NewCatalogHandler(carePlanRepo repository.CarePlanRepository, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		carePlanRepo: carePlanRepo,
		logger:       logger,
	}
}

// ListCarePlans retrieves all active care plans
// @Summary List care plans
// @Description Get all active care plans, main plans first
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.CarePlan} "Care plans retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/care-plans [get]
func (h *CatalogHandler) ListCarePlans(c *gin.Context) {
	plans, err := h.carePlanRepo.GetAllCarePlans()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list care plans")
		utils.InternalServerErrorResponse(c, "Failed to list care plans", err)
		return
	}

	utils.SuccessResponse(c, "Care plans retrieved successfully", plans)
}

// ListRoomTypes retrieves all room types
// @Summary List room types
// @Description Get all room types ordered by monthly price
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.RoomType} "Room types retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/room-types [get]
func (h *CatalogHandler) ListRoomTypes(c *gin.Context) {
	roomTypes, err := h.carePlanRepo.GetAllRoomTypes()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list room types")
		utils.InternalServerErrorResponse(c, "Failed to list room types", err)
		return
	}

	utils.SuccessResponse(c, "Room types retrieved successfully", roomTypes)
}
