package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupCarRoutes(protected *gin.RouterGroup, carController *controllers.CarController) {
	cars := protected.Group("/cars")
	{
		cars.POST("", carController.CreateCar)
		cars.GET("", carController.ListMyCars)
		cars.PUT("/:id", carController.UpdateCar)
		cars.DELETE("/:id", carController.DeleteCar)
		cars.GET("/:id/qr", carController.GetQRPayload)
	}
}
