package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"carehome-be-svc/internal/middleware"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
)

// Routes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	billingService service.BillingService,
	residentService service.ResidentService,
	visitService service.VisitService,
	vitalSignService service.VitalSignService,
	notificationService service.NotificationService,
	carePlanRepo repository.CarePlanRepository,
	jwtSecret string,
	logger *logger.Logger,
) {
	// Initialize handlers
	billingHandler := NewBillingHandler(billingService, logger)
	residentHandler := NewResidentHandler(residentService, billingService, logger)
	catalogHandler := NewCatalogHandler(carePlanRepo, logger)
	visitHandler := NewVisitHandler(visitService, logger)
	vitalSignHandler := NewVitalSignHandler(vitalSignService, logger)
	notificationHandler := NewNotificationHandler(notificationService, logger)

	staffOnly := middleware.AuthMiddleware(jwtSecret, "admin", "staff")

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)

		// Billing routes
		bills := v1.Group("/bills")
		{
			bills.GET("", billingHandler.ListBills)
			bills.GET("/statistics", billingHandler.GetStatistics)
			bills.GET("/export", billingHandler.ExportBills)
			bills.GET("/:id", billingHandler.GetBill)
			bills.POST("/proration-preview", billingHandler.PreviewProration)
			bills.POST("/confirm-payment", staffOnly, billingHandler.ConfirmPayment)
		}

		// Resident routes
		residents := v1.Group("/residents")
		{
			residents.GET("", residentHandler.ListResidents)
			residents.GET("/:id", residentHandler.GetResident)
			residents.GET("/:id/bills", residentHandler.GetResidentBills)
			residents.POST("/admit", staffOnly, residentHandler.AdmitResident)
			residents.PUT("/:id/discharge", staffOnly, residentHandler.DischargeResident)
		}

		// Catalog routes
		carePlans := v1.Group("/care-plans")
		{
			carePlans.GET("", catalogHandler.ListCarePlans)
		}
		roomTypes := v1.Group("/room-types")
		{
			roomTypes.GET("", catalogHandler.ListRoomTypes)
		}

		// Visit routes
		visits := v1.Group("/visits")
		{
			visits.POST("", visitHandler.ScheduleVisit)
			visits.GET("/resident/:resident_id", visitHandler.GetVisitsByResident)
			visits.PUT("/:id/status", staffOnly, visitHandler.UpdateVisitStatus)
		}

		// Vital sign routes
		vitals := v1.Group("/vitals")
		{
			vitals.POST("", staffOnly, vitalSignHandler.RecordVitalSign)
			vitals.GET("/resident/:resident_id", vitalSignHandler.GetVitalSignsByResident)
			vitals.GET("/resident/:resident_id/latest", vitalSignHandler.GetLatestVitalSign)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Care Home Backend Service",
	})
}
