package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/types"
	"github.com/road-mate/api-go/utils"
)

type PenaltyController struct {
	DB *gorm.DB
}

func NewPenaltyController(db *gorm.DB) *PenaltyController {
	return &PenaltyController{DB: db}
}

type CreatePenaltyRequest struct {
	Type        string   `json:"type" binding:"required"`
	Points      int      `json:"points" binding:"min=0,max=15"`
	StartDate   string   `json:"startDate" binding:"required"` // YYYY-MM-DD
	FineAmount  *float64 `json:"fineAmount"`
	DueDate     string   `json:"dueDate"`
	PlateNumber string   `json:"plateNumber"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
}

// CreatePenalty records a penalty against the calling user. end_date is
// derived from the start date here and everywhere else; clients never
// supply it.
func (pc *PenaltyController) CreatePenalty(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreatePenaltyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidPenaltyType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown penalty type"})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate must be YYYY-MM-DD"})
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dueDate must be YYYY-MM-DD"})
			return
		}
		dueDate = &parsed
	}

	penalty := models.Penalty{
		UserID:        user.UserID,
		Type:          req.Type,
		Points:        req.Points,
		FineAmount:    req.FineAmount,
		StartDate:     startDate,
		EndDate:       types.PenaltyEndDate(startDate),
		DueDate:       dueDate,
		PaymentStatus: models.PaymentStatusUnpaid,
		IsActive:      true,
		Description:   req.Description,
		Location:      req.Location,
	}

	if req.PlateNumber != "" {
		normalized := types.NormalizePlate(req.PlateNumber)
		penalty.PlateNumber = normalized

		// Link to a registered car when the plate matches one of ours;
		// otherwise the row stays an unlinked historical record.
		var car models.Car
		if err := pc.DB.Where("plate_number = ? AND owner_id = ?", normalized, user.UserID).
			First(&car).Error; err == nil {
			penalty.CarID = &car.ID
		}
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    user.UserID,
			PenaltyID: penalty.ID,
			Activity:  models.PenaltyActivityCreated,
			Points:    penalty.Points,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create penalty"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    penalty,
		Message: "Penalty created",
	})
}

func (pc *PenaltyController) ListMyPenalties(c *gin.Context) {
	user := utils.GetUser(c)

	var penalties []models.Penalty
	if err := pc.DB.Where("user_id = ?", user.UserID).
		Order("start_date DESC").
		Find(&penalties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch penalties"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: penalties})
}

// GetPointsSummary computes the rolling-window standing. asOf defaults to
// now; tests and the admin console pass it explicitly.
func (pc *PenaltyController) GetPointsSummary(c *gin.Context) {
	user := utils.GetUser(c)

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	var penalties []models.Penalty
	if err := pc.DB.Where("user_id = ?", user.UserID).Find(&penalties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch penalties"})
		return
	}

	accrued := types.AccruedPoints(asOf, penalties)

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"asOf":      asOf.Format("2006-01-02"),
			"accrued":   accrued,
			"indicator": types.PointsProgress(accrued),
		},
	})
}

// MarkPaid flips the payment status. Re-invoking on a paid penalty just
// refreshes the timestamp; the UI disables the affordance once paid.
func (pc *PenaltyController) MarkPaid(c *gin.Context) {
	user := utils.GetUser(c)
	penaltyID := c.Param("id")

	var penalty models.Penalty
	if err := pc.DB.Where("id = ? AND user_id = ?", penaltyID, user.UserID).
		First(&penalty).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Penalty not found"})
		return
	}

	now := time.Now()
	penalty.PaymentStatus = models.PaymentStatusPaid
	penalty.PaymentDate = &now

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    user.UserID,
			PenaltyID: penalty.ID,
			Activity:  models.PenaltyActivityPaid,
			Points:    penalty.Points,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update penalty"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: penalty, Message: "Penalty marked as paid"})
}

type UpdatePenaltyRequest struct {
	StartDate   string   `json:"startDate"`
	Points      *int     `json:"points" binding:"omitempty,min=0,max=15"`
	FineAmount  *float64 `json:"fineAmount"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
}

// UpdatePenalty edits an own penalty. A start-date change recomputes
// end_date; there is no path that sets end_date independently.
func (pc *PenaltyController) UpdatePenalty(c *gin.Context) {
	user := utils.GetUser(c)
	penaltyID := c.Param("id")

	var req UpdatePenaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var penalty models.Penalty
	if err := pc.DB.Where("id = ? AND user_id = ?", penaltyID, user.UserID).
		First(&penalty).Error; err != nil {
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

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&penalty).Error; err != nil {
			return err
		}
		return tx.Create(&models.PenaltyActivity{
			UserID:    user.UserID,
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

func (pc *PenaltyController) DeletePenalty(c *gin.Context) {
	user := utils.GetUser(c)
	penaltyID := c.Param("id")

	result := pc.DB.Where("id = ? AND user_id = ?", penaltyID, user.UserID).Delete(&models.Penalty{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete penalty"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Penalty not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Penalty deleted"})
}
