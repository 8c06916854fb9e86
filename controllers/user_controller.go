package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/types"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GetUserProfile returns a public view of another user.
func (uc *UserController) GetUserProfile(c *gin.Context) {
	userID := c.Param("userId")

	var profile struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Bio       string `json:"bio"`
		Avatar    string `json:"avatar"`
	}

	err := uc.DB.Table("users").
		Select("id, username, first_name, last_name, bio, avatar").
		Where("id = ? AND deleted_at IS NULL", userID).
		Scan(&profile).Error
	if err != nil || profile.ID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profile})
}

// SearchUsers finds users by username fragment. Input is escaped before the
// LIKE filter so wildcards cannot leak into the pattern.
func (uc *UserController) SearchUsers(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var users []struct {
		ID        uint   `json:"id"`
		Username  string `json:"username"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Avatar    string `json:"avatar"`
	}

	searchPattern := "%" + types.EscapeLike(query) + "%"

	var total int64
	uc.DB.Table("users").
		Where(`username LIKE ? ESCAPE '\' AND deleted_at IS NULL`, searchPattern).
		Count(&total)

	err := uc.DB.Table("users").
		Select("id, username, first_name, last_name, avatar").
		Where(`username LIKE ? ESCAPE '\' AND deleted_at IS NULL`, searchPattern).
		Order("username ASC").
		Limit(pageSize).
		Offset(offset).
		Scan(&users).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    users,
		Pagination: &PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	})
}
