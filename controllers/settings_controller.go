package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/settings"
)

type SettingsController struct {
	Settings *settings.Service
}

func NewSettingsController(settingsService *settings.Service) *SettingsController {
	return &SettingsController{Settings: settingsService}
}

// GetPublicSettings exposes the feature flags clients gate their UI on.
// Served from the cached snapshot, never the table.
func (sc *SettingsController) GetPublicSettings(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data: gin.H{
			"reportsEnabled":      sc.Settings.GetBool(models.SettingReportsEnabled),
			"chatEnabled":         sc.Settings.GetBool(models.SettingChatEnabled),
			"registrationEnabled": sc.Settings.GetBool(models.SettingRegistrationEnabled),
		},
	})
}

// GetAllSettings returns the full snapshot. Admin only.
func (sc *SettingsController) GetAllSettings(c *gin.Context) {
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: sc.Settings.Snapshot()})
}

type UpdateSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// UpdateSetting writes one key and broadcasts the change. Admin only.
func (sc *SettingsController) UpdateSetting(c *gin.Context) {
	var req UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.Settings.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setting"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Setting saved"})
}
