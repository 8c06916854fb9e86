package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/types"
	"github.com/road-mate/api-go/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

func paginationParams(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, (page - 1) * pageSize
}

func paginationMeta(page, pageSize int, total int64) *PaginationMeta {
	return &PaginationMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

func (ac *AdminController) ListUsers(c *gin.Context) {
	page, pageSize, offset := paginationParams(c)

	var total int64
	ac.DB.Model(&models.User{}).Count(&total)

	var users []models.User
	if err := ac.DB.Preload("Role").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       users,
		Pagination: paginationMeta(page, pageSize, total),
	})
}

func (ac *AdminController) ListReports(c *gin.Context) {
	page, pageSize, offset := paginationParams(c)

	query := ac.DB.Model(&models.Report{})
	if resolved := c.Query("resolved"); resolved != "" {
		query = query.Where("is_resolved = ?", resolved == "true")
	}

	var total int64
	query.Count(&total)

	var reports []models.Report
	if err := query.Preload("ReporterUser").Preload("ReportedUser").
		Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       reports,
		Pagination: paginationMeta(page, pageSize, total),
	})
}

// DismissReport removes a report that should never have been filed.
func (ac *AdminController) DismissReport(c *gin.Context) {
	reportID := c.Param("id")

	result := ac.DB.Where("id = ?", reportID).Delete(&models.Report{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dismiss report"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Report dismissed"})
}

func (ac *AdminController) ListPenalties(c *gin.Context) {
	page, pageSize, offset := paginationParams(c)

	query := ac.DB.Model(&models.Penalty{})
	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	var penalties []models.Penalty
	if err := query.Preload("User").
		Order("start_date DESC").
		Limit(pageSize).Offset(offset).
		Find(&penalties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch penalties"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       penalties,
		Pagination: paginationMeta(page, pageSize, total),
	})
}

type AdminCreatePenaltyRequest struct {
	UserID uint `json:"userId" binding:"required"`
	CreatePenaltyRequest
}

// CreatePenaltyForUser records a penalty against any user. Same derivation
// rules as the self-service path: end_date always follows start_date.
func (ac *AdminController) CreatePenaltyForUser(c *gin.Context) {
	admin := utils.GetUser(c)

	var req AdminCreatePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidPenaltyType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown penalty type"})
		return
	}

	var target models.User
	if err := ac.DB.First(&target, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}

	penalty := models.Penalty{
		UserID:        req.UserID,
		Type:          req.Type,
		Points:        req.Points,
		FineAmount:    req.FineAmount,
		StartDate:     startDate,
		EndDate:       types.PenaltyEndDate(startDate),
		PaymentStatus: models.PaymentStatusUnpaid,
		IsActive:      true,
		PlateNumber:   types.NormalizePlate(req.PlateNumber),
		Description:   req.Description,
		Location:      req.Location,
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    admin.UserID,
			PenaltyID: penalty.ID,
			Activity:  models.PenaltyActivityCreated,
			Points:    penalty.Points,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create penalty"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: penalty, Message: "Penalty created"})
}

// UpdatePenalty edits any penalty. As everywhere, a start-date change drags
// end_date with it; the request has no end_date field.
func (ac *AdminController) UpdatePenalty(c *gin.Context) {
	admin := utils.GetUser(c)
	penaltyID := c.Param("id")

	var req UpdatePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var penalty models.Penalty
	if err := ac.DB.First(&penalty, penaltyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Penalty not found"})
		return
	}

	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
			return
		}
		penalty.StartDate = startDate
		penalty.EndDate = types.PenaltyEndDate(startDate)
	}
	if req.Points != nil {
		penalty.Points = *req.Points
	}
	if req.FineAmount != nil {
		penalty.FineAmount = req.FineAmount
	}
	if req.Description != nil {
		penalty.Description = *req.Description
	}
	if req.Location != nil {
		penalty.Location = *req.Location
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    admin.UserID,
			PenaltyID: penalty.ID,
			Activity:  models.PenaltyActivityEdited,
			Points:    penalty.Points,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update penalty"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: penalty, Message: "Penalty updated"})
}

// DeactivatePenalty takes a penalty out of the accrual set ahead of its
// window, e.g. after a successful contest.
func (ac *AdminController) DeactivatePenalty(c *gin.Context) {
	admin := utils.GetUser(c)
	penaltyID := c.Param("id")

	var penalty models.Penalty
	if err := ac.DB.First(&penalty, penaltyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Penalty not found"})
		return
	}

	penalty.IsActive = false
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    admin.UserID,
			PenaltyID: penalty.ID,
			Activity:  models.PenaltyActivityExpired,
			Points:    penalty.Points,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate penalty"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: penalty, Message: "Penalty deactivated"})
}

// ListPenaltyActivity exposes the audit trail for one penalty.
func (ac *AdminController) ListPenaltyActivity(c *gin.Context) {
	penaltyID := c.Param("id")

	var activity []models.PenaltyActivity
	if err := ac.DB.Where("penalty_id = ?", penaltyID).
		Order("created_at ASC").
		Find(&activity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: activity})
}

type SetUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

func (ac *AdminController) SetUserRole(c *gin.Context) {
	userID := c.Param("userId")

	var req SetUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var role models.Role
	err := ac.DB.Where("name = ?", req.Role).First(&role).Error
	if err == gorm.ErrRecordNotFound {
		role = models.Role{Name: req.Role}
		err = ac.DB.Create(&role).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
		return
	}

	user.RoleID = role.ID
	if err := ac.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "User role updated"})
}
