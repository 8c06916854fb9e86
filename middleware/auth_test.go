package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/road-mate/api-go/middleware"
	"github.com/road-mate/api-go/models"
	"github.com/road-mate/api-go/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter() (*gin.Engine, *utils.UserClaims) {
	var seen utils.UserClaims
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(), func(c *gin.Context) {
		if user := utils.GetUser(c); user != nil {
			seen = *user
		}
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, seen := protectedRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"role":    models.RoleAdmin,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), seen.UserID)
	assert.Equal(t, models.RoleAdmin, seen.Role)
}

func TestAuthMiddlewareRejectsBadRequests(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := protectedRouter()

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "just-a-token",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestAuthMiddlewareRejectsExpiredAndForeignTokens(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r, _ := protectedRouter()

	expired := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": float64(42),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	for name, token := range map[string]string{"expired": expired, "wrong key": wrongKey} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestAdminMiddlewareGatesOnRole(t *testing.T) {
	run := func(claims *utils.UserClaims) int {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			if claims != nil {
				c.Set(string(utils.UserContextKey), claims)
			}
		}, middleware.AdminMiddleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusOK, run(&utils.UserClaims{UserID: 1, Role: models.RoleAdmin}))
	assert.Equal(t, http.StatusForbidden, run(&utils.UserClaims{UserID: 1, Role: models.RoleUser}))
	assert.Equal(t, http.StatusForbidden, run(nil))
}
