package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/controllers"
)

func SetupSocialRoutes(protected *gin.RouterGroup, friendshipController *controllers.FriendshipController, chatController *controllers.ChatController) {
	// Sending a request targets a user; everything else targets the edge.
	users := protected.Group("/users")
	{
		users.POST("/:userId/friend-request", friendshipController.SendRequest)
	}

	friends := protected.Group("/friends")
	{
		friends.GET("", friendshipController.ListFriends)
		friends.GET("/requests", friendshipController.ListPendingRequests)
		friends.POST("/:id/accept", friendshipController.Accept)
		friends.POST("/:id/decline", friendshipController.Decline)
		friends.POST("/:id/block", friendshipController.Block)
		friends.POST("/:id/unblock", friendshipController.Unblock)
		friends.DELETE("/:id", friendshipController.Unfriend)
	}

	chat := protected.Group("/chat")
	{
		chat.POST("/messages", chatController.SendMessage)
		chat.GET("/with/:userId", chatController.GetConversation)
		chat.POST("/with/:userId/read", chatController.MarkConversationRead)
		chat.GET("/unread", chatController.GetUnreadCounts)
	}
}
