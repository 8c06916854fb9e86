package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/controllers"
	"github.com/road-mate/api-go/middleware"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/settings"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, hub *realtime.Hub, settingsService *settings.Service) {
	// Initialize controllers
	uploadController := controllers.NewUploadController(db)
	authController := controllers.NewAuthController(db, settingsService)
	userController := controllers.NewUserController(db)
	penaltyController := controllers.NewPenaltyController(db)
	reportController := controllers.NewReportController(db, hub, settingsService, uploadController)
	friendshipController := controllers.NewFriendshipController(db, hub)
	chatController := controllers.NewChatController(db, hub, settingsService)
	carController := controllers.NewCarController(db)
	settingsController := controllers.NewSettingsController(settingsService)
	emergencyController := controllers.NewEmergencyController(settingsService)
	adminController := controllers.NewAdminController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		// Callable with an expired access token; the refresh token itself
		// is the credential here.
		public.POST("/refresh-token", authController.RefreshToken)
		public.GET("/settings", settingsController.GetPublicSettings)
		public.GET("/emergency-services", emergencyController.ListEmergencyServices)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.GET("/profile", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupUserRoutes(protected, userController)
		SetupPenaltyRoutes(protected, penaltyController)
		SetupReportRoutes(protected, reportController)
		SetupSocialRoutes(protected, friendshipController, chatController)
		SetupCarRoutes(protected, carController)
		SetupUploadRoutes(protected, uploadController)
	}

	// Admin routes
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		SetupAdminRoutes(admin, adminController, settingsController)
	}
}
