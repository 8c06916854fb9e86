package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController) {
	users := protected.Group("/users")
	{
		users.GET("/:userId/profile", userController.GetUserProfile)
	}

	// Lives outside /users: a static /users/search segment would collide
	// with the :userId wildcard in the router tree.
	protected.GET("/search/users", userController.SearchUsers)
}
