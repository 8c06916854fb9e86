package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/utils"
)

type FriendshipController struct {
	DB  *gorm.DB
	Hub *realtime.Hub
}

func NewFriendshipController(db *gorm.DB, hub *realtime.Hub) *FriendshipController {
	return &FriendshipController{DB: db, Hub: hub}
}

// SendRequest creates a pending edge toward the target user. A repeated
// request for the same pair, in either direction, is answered with an
// informational message instead of a second row — the unique pair index
// backstops the pre-check against races.
func (fc *FriendshipController) SendRequest(c *gin.Context) {
	user := utils.GetUser(c)
	targetUserID := c.Param("userId")

	var targetUser models.User
	if err := fc.DB.First(&targetUser, targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.UserID == targetUser.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a friend request to yourself"})
		return
	}

	var existing models.Friendship
	err := fc.DB.Where(
		"(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
		user.UserID, targetUser.ID, targetUser.ID, user.UserID,
	).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, StandardResponse{
			Success: true,
			Data:    existing,
			Message: "A relationship with this user already exists",
		})
		return
	}

	friendship := models.Friendship{
		RequesterID: user.UserID,
		AddresseeID: targetUser.ID,
		Status:      models.FriendshipStatusPending,
	}

	if err := fc.DB.Create(&friendship).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusOK, StandardResponse{
				Success: true,
				Message: "Friend request already sent",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	fc.publish(c, realtime.EventInsert, &friendship)

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    friendship,
		Message: "Friend request sent",
	})
}

// Accept transitions pending -> accepted. Only the addressee may accept.
func (fc *FriendshipController) Accept(c *gin.Context) {
	fc.transition(c, func(user *utils.UserClaims, f *models.Friendship) (string, string) {
		if f.AddresseeID != user.UserID || f.Status != models.FriendshipStatusPending {
			return "", "Only the addressee can accept a pending request"
		}
		return models.FriendshipStatusAccepted, ""
	}, "Friend request accepted")
}

// Decline transitions pending -> blocked. Only the addressee may decline.
func (fc *FriendshipController) Decline(c *gin.Context) {
	fc.transition(c, func(user *utils.UserClaims, f *models.Friendship) (string, string) {
		if f.AddresseeID != user.UserID || f.Status != models.FriendshipStatusPending {
			return "", "Only the addressee can decline a pending request"
		}
		return models.FriendshipStatusBlocked, ""
	}, "Friend request declined")
}

// Block transitions accepted -> blocked. Either side may block.
func (fc *FriendshipController) Block(c *gin.Context) {
	fc.transition(c, func(user *utils.UserClaims, f *models.Friendship) (string, string) {
		if f.Status != models.FriendshipStatusAccepted {
			return "", "Only an accepted friendship can be blocked"
		}
		if f.RequesterID != user.UserID && f.AddresseeID != user.UserID {
			return "", "Not part of this friendship"
		}
		return models.FriendshipStatusBlocked, ""
	}, "User blocked")
}

// Unblock transitions blocked -> accepted.
func (fc *FriendshipController) Unblock(c *gin.Context) {
	fc.transition(c, func(user *utils.UserClaims, f *models.Friendship) (string, string) {
		if f.Status != models.FriendshipStatusBlocked {
			return "", "Only a blocked relationship can be unblocked"
		}
		if f.RequesterID != user.UserID && f.AddresseeID != user.UserID {
			return "", "Not part of this friendship"
		}
		return models.FriendshipStatusAccepted, ""
	}, "User unblocked")
}

// Unfriend removes the edge entirely.
func (fc *FriendshipController) Unfriend(c *gin.Context) {
	user := utils.GetUser(c)
	friendshipID := c.Param("id")

	var friendship models.Friendship
	if err := fc.DB.First(&friendship, friendshipID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}
	if friendship.RequesterID != user.UserID && friendship.AddresseeID != user.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not part of this friendship"})
		return
	}

	if err := fc.DB.Delete(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friendship"})
		return
	}

	fc.publish(c, realtime.EventDelete, &friendship)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Friendship removed"})
}

func (fc *FriendshipController) ListFriends(c *gin.Context) {
	user := utils.GetUser(c)

	var friendships []models.Friendship
	err := fc.DB.Preload("Requester").Preload("Addressee").
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			user.UserID, user.UserID, models.FriendshipStatusAccepted).
		Find(&friendships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: friendships})
}

func (fc *FriendshipController) ListPendingRequests(c *gin.Context) {
	user := utils.GetUser(c)

	var friendships []models.Friendship
	err := fc.DB.Preload("Requester").
		Where("addressee_id = ? AND status = ?", user.UserID, models.FriendshipStatusPending).
		Find(&friendships).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending requests"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: friendships})
}

func (fc *FriendshipController) transition(
	c *gin.Context,
	decide func(*utils.UserClaims, *models.Friendship) (string, string),
	okMessage string,
) {
	user := utils.GetUser(c)
	friendshipID := c.Param("id")

	var friendship models.Friendship
	if err := fc.DB.First(&friendship, friendshipID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	next, denied := decide(user, &friendship)
	if denied != "" {
		c.JSON(http.StatusForbidden, gin.H{"error": denied})
		return
	}

	friendship.Status = next
	if err := fc.DB.Save(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friendship"})
		return
	}

	fc.publish(c, realtime.EventUpdate, &friendship)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: friendship, Message: okMessage})
}

func (fc *FriendshipController) publish(c *gin.Context, typ realtime.EventType, f *models.Friendship) {
	if fc.Hub == nil {
		return
	}
	ev := realtime.NewEvent("friendships", typ, f.ID, f)
	fc.Hub.Publish(c.Request.Context(), realtime.FriendshipsChannel(f.RequesterID), ev)
	fc.Hub.Publish(c.Request.Context(), realtime.FriendshipsChannel(f.AddresseeID), ev)
}
