package routes

import (
	"os"
	"strings"

	"tailortrack-backend/config"
	"tailortrack-backend/controllers"
	"tailortrack-backend/services"
	"tailortrack-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	payments := &controllers.Payments{Service: services.NewPaymentService(config.DB)}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Price-list routes
		catalog := api.Group("/catalog")
		{
			catalog.POST("", controllers.CreateCatalogItem)
			catalog.GET("", controllers.GetCatalogItems)
			catalog.GET("/:id", controllers.GetCatalogItem)
			catalog.PUT("/:id", controllers.UpdateCatalogItem)
			catalog.DELETE("/:id", controllers.DeleteCatalogItem)
		}

		// Order routes
		orders := api.Group("/orders")
		{
			orders.POST("", controllers.CreateOrder)
			orders.GET("", controllers.GetOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.PUT("/:id", controllers.UpdateOrder)
			orders.DELETE("/:id", controllers.DeleteOrder)
		}

		// Garment routes
		garments := api.Group("/garments")
		{
			garments.GET("", controllers.GetGarments)
			garments.GET("/:id", controllers.GetGarment)
			garments.PUT("/:id", controllers.UpdateGarment)
			garments.POST("/:id/pickup", controllers.PickupGarment)
			garments.POST("/:id/services", controllers.AddGarmentService)
			garments.POST("/reconcile", controllers.ReconcileStages)
		}

		// Service line routes
		serviceLines := api.Group("/services")
		{
			serviceLines.PUT("/:id", controllers.UpdateGarmentService)
			serviceLines.POST("/:id/toggle", controllers.ToggleServiceDone)
			serviceLines.DELETE("/:id", controllers.RemoveGarmentService)
			serviceLines.POST("/:id/restore", controllers.RestoreGarmentService)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.DELETE("/:id", controllers.DeleteInvoice)

			invoices.GET("/:id/payments", payments.GetInvoicePayments)
			invoices.POST("/:id/payments", payments.RecordPayment)
			invoices.POST("/:id/payment-intent", payments.CreatePaymentIntent)
		}
		api.POST("/payments/:id/sync", payments.SyncPayment)

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.POST("/:id/cancel", controllers.CancelAppointment)
			appointments.POST("/:id/complete", controllers.CompleteAppointment)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports", reportController.GetReportAnalytics)

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := auth.Group("/profile", utils.AuthMiddleware())
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("/update-shop", controllers.UpdateShopProfile)
			profile.PUT("/update-hours", controllers.UpdateWorkingHours)
			profile.PUT("/update-templates", controllers.UpdateReminderTemplates)
			profile.PUT("/update-notifications", controllers.UpdateNotifications)
		}

		employees := api.Group("/employees")
		{
			employees.GET("", controllers.GetEmployees)
			employees.POST("", controllers.AddEmployee)
			employees.PUT("/:id", controllers.UpdateEmployee)
			employees.DELETE("/:id", controllers.DeleteEmployee)
		}
	}

	return r
}
