package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mindcare-app-server/internal/booking"
	"mindcare-app-server/internal/config"
	"mindcare-app-server/internal/handlers"
	"mindcare-app-server/internal/middleware"
	"mindcare-app-server/internal/models"
	"mindcare-app-server/internal/storage"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	stores := storage.New(db)
	bookingService := booking.NewService(
		stores.Users,
		stores.Appointments,
		stores.Availability,
		stores.Records,
		stores.Notifier,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	appointmentHandler := handlers.NewAppointmentHandler(db, bookingService)
	availabilityHandler := handlers.NewAvailabilityHandler(bookingService)
	recordHandler := handlers.NewRecordHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	adminHandler := handlers.NewAdminHandler(db, stores.Notifier)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/refresh-token", authHandler.RefreshToken)
		}

		// Anyone can browse approved doctors and their schedules
		public.GET("/users/doctors", userHandler.GetDoctors)
		public.GET("/users/doctors/:id", userHandler.GetDoctorWithAvailability)
		public.GET("/availability/:id", availabilityHandler.GetDoctorAvailability)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
			authRoutesPrivate.PUT("/profile", authHandler.UpdateProfile)
		}

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			// Patient routes
			appointmentRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.BookAppointment)
			appointmentRoutes.GET("/my-appointments", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.GetMyAppointments)
			appointmentRoutes.PATCH("/cancel/:id", middleware.RoleAuthMiddleware(models.RoleUser), appointmentHandler.CancelAppointment)

			// Doctor routes
			appointmentRoutes.GET("/doctor-appointments", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.GetDoctorAppointments)
			appointmentRoutes.PATCH("/update-status/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/complete/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), appointmentHandler.CompleteAppointment)
		}

		// Availability routes (doctor schedule management)
		availabilityRoutes := private.Group("/availability")
		availabilityRoutes.Use(middleware.RoleAuthMiddleware(models.RoleDoctor))
		{
			availabilityRoutes.GET("", availabilityHandler.GetAvailability)
			availabilityRoutes.POST("", availabilityHandler.SetAvailability)
			availabilityRoutes.POST("/bulk", availabilityHandler.SetBulkAvailability)
			availabilityRoutes.DELETE("/:day", availabilityHandler.DeleteAvailability)
		}

		// Patient record routes
		recordRoutes := private.Group("/records")
		{
			recordRoutes.GET("/my-records", middleware.RoleAuthMiddleware(models.RoleUser), recordHandler.GetMyRecords)
			recordRoutes.GET("/doctor-records", middleware.RoleAuthMiddleware(models.RoleDoctor), recordHandler.GetDoctorRecords)
			recordRoutes.GET("/patient/:patientId", middleware.RoleAuthMiddleware(models.RoleDoctor), recordHandler.GetPatientConsultationHistory)
			recordRoutes.PATCH("/:id", middleware.RoleAuthMiddleware(models.RoleDoctor), recordHandler.UpdateRecord)
			recordRoutes.GET("/:id", recordHandler.GetRecordByID) // Authorization inside handler
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.GetNotifications)
			notificationRoutes.PATCH("/read-all", notificationHandler.MarkAllAsRead)
			notificationRoutes.PATCH("/read/:id", notificationHandler.MarkAsRead)
			notificationRoutes.DELETE("/:id", notificationHandler.DeleteNotification)
		}

		// Doctor profile management
		private.PUT("/users/doctor-profile", middleware.RoleAuthMiddleware(models.RoleDoctor), userHandler.UpdateDoctorProfile)

		// Admin-only routes
		adminRoutes := private.Group("/admin")
		adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.PATCH("/approve-doctor/:id", adminHandler.ApproveDoctor)
			adminRoutes.GET("/appointments", adminHandler.GetAllAppointments)
			adminRoutes.DELETE("/appointments/:id", adminHandler.DeleteAppointment)

			adminRoutes.POST("/users", userHandler.CreateUser)
			adminRoutes.GET("/users", userHandler.GetUsers)
			adminRoutes.GET("/users/:id", userHandler.GetUserByID)
			adminRoutes.PUT("/users/:id", userHandler.UpdateUser)
			adminRoutes.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
