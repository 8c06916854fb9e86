package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/settings"
	"github.com/road-mate/api-go/utils"
)

type ChatController struct {
	DB       *gorm.DB
	Hub      *realtime.Hub
	Settings *settings.Service
}

func NewChatController(db *gorm.DB, hub *realtime.Hub, settingsService *settings.Service) *ChatController {
	return &ChatController{DB: db, Hub: hub, Settings: settingsService}
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// SendMessage persists a message and announces it on the conversation
// channel. Messages are append-only; there is no delete path.
func (cc *ChatController) SendMessage(c *gin.Context) {
	user := utils.GetUser(c)

	if cc.Settings != nil && !cc.Settings.GetBool(models.SettingChatEnabled) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Chat is currently disabled"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ReceiverID == user.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot message yourself"})
		return
	}

	var receiver models.User
	if err := cc.DB.First(&receiver, req.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}

	// Blocked pairs cannot message each other.
	var blocked int64
	cc.DB.Model(&models.Friendship{}).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			user.UserID, req.ReceiverID, req.ReceiverID, user.UserID, models.FriendshipStatusBlocked).
		Count(&blocked)
	if blocked > 0 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot message this user"})
		return
	}

	message := models.ChatMessage{
		SenderID:   user.UserID,
		ReceiverID: req.ReceiverID,
		Body:       req.Body,
	}

	if err := cc.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	if cc.Hub != nil {
		cc.Hub.Publish(c.Request.Context(),
			realtime.ChatChannel(user.UserID, req.ReceiverID),
			realtime.NewEvent("chat_messages", realtime.EventInsert, message.ID, message))
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: message, Message: "Message sent"})
}

// GetConversation returns the message history between the caller and one
// peer, oldest first.
func (cc *ChatController) GetConversation(c *gin.Context) {
	user := utils.GetUser(c)
	peerID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var messages []models.ChatMessage
	err = cc.DB.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		user.UserID, peerID, peerID, user.UserID,
	).Order("created_at ASC").Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch conversation"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: messages})
}

// MarkConversationRead flips is_read on every message the peer sent us.
// Flipping the flag is the only mutation chat messages ever see.
func (cc *ChatController) MarkConversationRead(c *gin.Context) {
	user := utils.GetUser(c)
	peerID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	result := cc.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", peerID, user.UserID, false).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}

	if cc.Hub != nil && result.RowsAffected > 0 {
		cc.Hub.Publish(c.Request.Context(),
			realtime.ChatChannel(user.UserID, uint(peerID)),
			realtime.NewEvent("chat_messages", realtime.EventUpdate, 0, nil))
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"updated": result.RowsAffected},
		Message: "Conversation marked read",
	})
}

// GetUnreadCounts returns the unread total per peer.
func (cc *ChatController) GetUnreadCounts(c *gin.Context) {
	user := utils.GetUser(c)

	var counts []struct {
		SenderID uint  `json:"senderId"`
		Count    int64 `json:"count"`
	}
	err := cc.DB.Model(&models.ChatMessage{}).
		Select("sender_id, COUNT(*) as count").
		Where("receiver_id = ? AND is_read = ?", user.UserID, false).
		Group("sender_id").
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unread counts"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: counts})
}
