package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupAdminRoutes(admin *gin.RouterGroup, adminController *controllers.AdminController, settingsController *controllers.SettingsController) {
	admin.GET("/users", adminController.ListUsers)
	admin.PUT("/users/:userId/role", adminController.SetUserRole)

	admin.GET("/reports", adminController.ListReports)
	admin.DELETE("/reports/:id", adminController.DismissReport)

	admin.GET("/penalties", adminController.ListPenalties)
	admin.POST("/penalties", adminController.CreatePenaltyForUser)
	admin.PUT("/penalties/:id", adminController.UpdatePenalty)
	admin.POST("/penalties/:id/deactivate", adminController.DeactivatePenalty)
	admin.GET("/penalties/:id/activity", adminController.ListPenaltyActivity)

	admin.GET("/settings", settingsController.GetAllSettings)
	admin.PUT("/settings", settingsController.UpdateSetting)
}
