package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupReportRoutes(protected *gin.RouterGroup, reportController *controllers.ReportController) {
	reports := protected.Group("/reports")
	{
		reports.GET("/resolve-plate", reportController.ResolvePlate)
		reports.POST("", reportController.SubmitReport)
		reports.GET("/mine", reportController.ListMyReports)
		reports.GET("/against-me", reportController.ListReportsAgainstMe)
		reports.POST("/:id/resolve", reportController.ResolveReport)
	}
}
