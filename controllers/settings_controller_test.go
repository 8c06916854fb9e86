package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/controllers"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/settings"
)

func loadedSettings(t *testing.T, db *gorm.DB) *settings.Service {
	t.Helper()

	svc := settings.NewService(db, nil)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

func TestGetPublicSettingsReflectsFlags(t *testing.T) {
	db := setupTestDB(t)
	svc := loadedSettings(t, db)
	require.NoError(t, svc.Set(context.Background(), models.SettingChatEnabled, "false"))

	sc := controllers.NewSettingsController(svc)
	r := gin.New()
	r.GET("/settings", sc.GetPublicSettings)

	w := perform(r, http.MethodGet, "/settings")
	require.Equal(t, http.StatusOK, w.Code)
	data := dataField(t, w)
	assert.Equal(t, true, data["reportsEnabled"])
	assert.Equal(t, false, data["chatEnabled"])
	assert.Equal(t, true, data["registrationEnabled"])
}

func TestUpdateSettingPersistsAndServesSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := loadedSettings(t, db)

	sc := controllers.NewSettingsController(svc)
	r := gin.New()
	auth := authAs(1, models.RoleAdmin)
	r.GET("/admin/settings", auth, sc.GetAllSettings)
	r.PUT("/admin/settings", auth, sc.UpdateSetting)

	w := performJSON(r, http.MethodPut, "/admin/settings", map[string]interface{}{
		"key": models.SettingReportsEnabled, "value": "false",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var row models.PlatformSetting
	require.NoError(t, db.Where("setting_key = ?", models.SettingReportsEnabled).First(&row).Error)
	assert.Equal(t, "false", row.Value)

	w = perform(r, http.MethodGet, "/admin/settings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", dataField(t, w)[models.SettingReportsEnabled])

	w = performJSON(r, http.MethodPut, "/admin/settings", map[string]interface{}{"key": "only-key"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListEmergencyServices(t *testing.T) {
	db := setupTestDB(t)
	svc := loadedSettings(t, db)

	ec := controllers.NewEmergencyController(svc)
	r := gin.New()
	r.GET("/emergency-services", ec.ListEmergencyServices)

	// Defaults ship with a usable list.
	w := perform(r, http.MethodGet, "/emergency-services")
	require.Equal(t, http.StatusOK, w.Code)
	services := decodeBody(t, w)["data"].([]interface{})
	require.NotEmpty(t, services)
	first := services[0].(map[string]interface{})
	assert.NotEmpty(t, first["name"])
	assert.NotEmpty(t, first["number"])

	// Admin-configured list replaces the defaults.
	require.NoError(t, svc.Set(context.Background(), models.SettingEmergencyNumbers,
		`[{"name":"Fire","number":"101"}]`))
	w = perform(r, http.MethodGet, "/emergency-services")
	require.Equal(t, http.StatusOK, w.Code)
	services = decodeBody(t, w)["data"].([]interface{})
	require.Len(t, services, 1)
	assert.Equal(t, "Fire", services[0].(map[string]interface{})["name"])

	// A corrupt value is a server error, not a crash.
	require.NoError(t, svc.Set(context.Background(), models.SettingEmergencyNumbers, "not json"))
	w = perform(r, http.MethodGet, "/emergency-services")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
