package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupUploadRoutes(protected *gin.RouterGroup, uploadController *controllers.UploadController) {
	uploads := protected.Group("/uploads")
	{
		uploads.POST("/avatar-url", uploadController.GetAvatarUploadURL)
		// Catch-all: object keys contain slashes.
		uploads.DELETE("/*key", uploadController.DeleteFile)
	}
}
