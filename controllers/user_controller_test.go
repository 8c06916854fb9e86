package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/road-mate/api-go/controllers"
	"github.com/road-mate/api-go/models"
)

func userRouter(db *gorm.DB, userID uint) *gin.Engine {
	r := gin.New()
	uc := controllers.NewUserController(db)
	auth := authAs(userID, models.RoleUser)
	r.GET("/users/:userId/profile", auth, uc.GetUserProfile)
	r.GET("/search/users", auth, uc.SearchUsers)
	return r
}

func TestGetUserProfileExposesPublicFieldsOnly(t *testing.T) {
	db := setupTestDB(t)
	viewer := createTestUser(t, db, "viewer")
	target := createTestUser(t, db, "target")
	require.NoError(t, db.Model(&target).Updates(map[string]interface{}{
		"first_name": "Tara", "bio": "night owl",
	}).Error)

	r := userRouter(db, viewer.ID)
	w := perform(r, http.MethodGet, fmt.Sprintf("/users/%d/profile", target.ID))
	require.Equal(t, http.StatusOK, w.Code)

	data := dataField(t, w)
	assert.Equal(t, "target", data["username"])
	assert.Equal(t, "Tara", data["firstName"])
	_, hasEmail := data["email"]
	assert.False(t, hasEmail)
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	w = perform(r, http.MethodGet, "/users/9999/profile")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchUsersByFragment(t *testing.T) {
	db := setupTestDB(t)
	viewer := createTestUser(t, db, "viewer")
	createTestUser(t, db, "driver_anna")
	createTestUser(t, db, "driver_bella")
	createTestUser(t, db, "rider_carl")

	r := userRouter(db, viewer.ID)
	w := perform(r, http.MethodGet, "/search/users?q=driver")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["data"], 2)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(2), pagination["totalItems"])

	// A wildcard in the query is a literal, not a match-everything.
	w = perform(r, http.MethodGet, "/search/users?q=%25")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])

	w = perform(r, http.MethodGet, "/search/users?q=")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchUsersPaginates(t *testing.T) {
	db := setupTestDB(t)
	viewer := createTestUser(t, db, "viewer")
	for i := 0; i < 5; i++ {
		createTestUser(t, db, fmt.Sprintf("driver_%d", i))
	}

	r := userRouter(db, viewer.ID)
	w := perform(r, http.MethodGet, "/search/users?q=driver&page=2&pageSize=3")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, body["data"], 2)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(5), pagination["totalItems"])
	assert.Equal(t, float64(2), pagination["totalPages"])
	assert.Equal(t, float64(2), pagination["currentPage"])
}
