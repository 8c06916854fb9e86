package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/utils"
)

// AdminMiddleware gates a route group on the role claim. Must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := utils.GetUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
