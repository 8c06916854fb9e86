package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupPenaltyRoutes(protected *gin.RouterGroup, penaltyController *controllers.PenaltyController) {
	penalties := protected.Group("/penalties")
	{
		penalties.POST("", penaltyController.CreatePenalty)
		penalties.GET("", penaltyController.ListMyPenalties)
		penalties.GET("/points", penaltyController.GetPointsSummary)
		penalties.PUT("/:id", penaltyController.UpdatePenalty)
		penalties.POST("/:id/pay", penaltyController.MarkPaid)
		penalties.DELETE("/:id", penaltyController.DeletePenalty)
	}
}
