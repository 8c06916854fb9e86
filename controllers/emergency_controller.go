package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/settings"
)

// EmergencyService is one entry on the emergency shortcut list, stored as
// JSON under the emergency_numbers setting.
type EmergencyService struct {
	Name   string `json:"name"`
	Number string `json:"number"`
}

type EmergencyController struct {
	Settings *settings.Service
}

func NewEmergencyController(settingsService *settings.Service) *EmergencyController {
	return &EmergencyController{Settings: settingsService}
}

// ListEmergencyServices returns the configured shortcuts. Edits go through
// the admin settings endpoint.
func (ec *EmergencyController) ListEmergencyServices(c *gin.Context) {
	raw := ec.Settings.Get(models.SettingEmergencyNumbers)

	var services []EmergencyService
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &services); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Emergency services misconfigured"})
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: services})
}
