package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/types"
	"github.com/road-mate/api-go/utils"
)

type CarController struct {
	DB *gorm.DB
}

func NewCarController(db *gorm.DB) *CarController {
	return &CarController{DB: db}
}

type CarRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	Make        string `json:"make"`
	Model       string `json:"model"`
	Color       string `json:"color"`
	Year        int    `json:"year"`
}

func (cc *CarController) CreateCar(c *gin.Context) {
	user := utils.GetUser(c)

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plate := types.NormalizePlate(req.PlateNumber)
	if !types.ValidPlate(plate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plate number"})
		return
	}

	car := models.Car{
		OwnerID:     user.UserID,
		PlateNumber: plate,
		Make:        req.Make,
		Model:       req.Model,
		Color:       req.Color,
		Year:        req.Year,
	}

	if err := cc.DB.Create(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A car with this plate is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register car"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: car, Message: "Car registered"})
}

func (cc *CarController) ListMyCars(c *gin.Context) {
	user := utils.GetUser(c)

	var cars []models.Car
	if err := cc.DB.Where("owner_id = ?", user.UserID).Find(&cars).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cars"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: cars})
}

func (cc *CarController) UpdateCar(c *gin.Context) {
	user := utils.GetUser(c)
	carID := c.Param("id")

	var req CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var car models.Car
	if err := cc.DB.Where("id = ? AND owner_id = ?", carID, user.UserID).First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	plate := types.NormalizePlate(req.PlateNumber)
	if !types.ValidPlate(plate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plate number"})
		return
	}

	car.PlateNumber = plate
	car.Make = req.Make
	car.Model = req.Model
	car.Color = req.Color
	car.Year = req.Year

	if err := cc.DB.Save(&car).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "A car with this plate is already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: car, Message: "Car updated"})
}

func (cc *CarController) DeleteCar(c *gin.Context) {
	user := utils.GetUser(c)
	carID := c.Param("id")

	result := cc.DB.Where("id = ? AND owner_id = ?", carID, user.UserID).Delete(&models.Car{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Car deleted"})
}

// GetQRPayload assembles the windshield-sticker payload for one of the
// caller's cars.
func (cc *CarController) GetQRPayload(c *gin.Context) {
	user := utils.GetUser(c)
	carID := c.Param("id")

	var car models.Car
	if err := cc.DB.Preload("Owner").
		Where("id = ? AND owner_id = ?", carID, user.UserID).
		First(&car).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	payload := types.QRPayload{
		PlateNumber: car.PlateNumber,
		OwnerHandle: car.Owner.Username,
		Contact:     "chat",
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"payload": payload.Encode(),
			"plate":   car.PlateNumber,
		},
	})
}
