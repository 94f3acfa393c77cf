package handler

import (
	"github.com/gin-gonic/gin"

	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
	"carehome-be-svc/pkg/utils"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notificationService service.NotificationService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// ListNotifications returns notifications for a recipient
// @Summary List notifications
// @Description Get notifications for a recipient with pagination, newest first
// @Tags notifications
// @Accept json
// @Produce json
// @Param recipient query string true "Recipient identifier"
// @Param unread_only query bool false "Only return unread notifications"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Success 200 {object} utils.PaginatedResponse{data=[]models.Notification} "Notifications retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Missing recipient"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	recipient := c.Query("recipient")
	if recipient == "" {
		utils.BadRequestResponse(c, "recipient query parameter is required", nil)
		return
	}

	unreadOnly := c.Query("unread_only") == "true"
	page, perPage := utils.GetPaginationParams(c)

	notifications, total, err := h.notificationService.GetNotifications(recipient, unreadOnly, page, perPage)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get notifications")
		utils.InternalServerErrorResponse(c, "Failed to get notifications", err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Notifications retrieved successfully", notifications, page, perPage, total)
}

// MarkNotificationRead marks a notification as read
// @Summary Mark notification read
// @Description Mark a notification as read
// @Tags notifications
// @Accept json
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.APIResponse "Notification marked as read"
// @Failure 400 {object} utils.APIResponse "Invalid notification ID"
// @Failure 404 {object} utils.APIResponse "Notification not found"
// @Router /api/v1/notifications/{id}/read [put]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	id, err := utils.GetIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", err)
		return
	}

	if err := h.notificationService.MarkRead(id); err != nil {
		utils.NotFoundResponse(c, "Notification not found")
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}
