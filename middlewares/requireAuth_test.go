package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(), func(ctx *gin.Context) {
		user, _ := GetAuthUser(ctx)
		ctx.JSON(http.StatusOK, gin.H{"userId": user.UserID, "isAdmin": user.IsAdmin})
	})
	router.GET("/admin", RequireAuth(), RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := setupAuthRouter()

	validToken := signTestToken(t, jwt.MapClaims{
		"userId":  float64(7),
		"email":   "user@example.com",
		"isAdmin": false,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	expiredToken := signTestToken(t, jwt.MapClaims{
		"userId": float64(7),
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})

	tests := []struct {
		name         string
		authHeader   string
		expectedCode int
	}{
		{"missing_header", "", http.StatusUnauthorized},
		{"not_bearer", "Basic abc123", http.StatusUnauthorized},
		{"garbage_token", "Bearer not-a-token", http.StatusForbidden},
		{"expired_token", "Bearer " + expiredToken, http.StatusForbidden},
		{"valid_token", "Bearer " + validToken, http.StatusOK},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if testCase.authHeader != "" {
				req.Header.Set("Authorization", testCase.authHeader)
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)
			assert.Equal(t, testCase.expectedCode, recorder.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	router := setupAuthRouter()

	customerToken := signTestToken(t, jwt.MapClaims{
		"userId":  float64(7),
		"isAdmin": false,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signTestToken(t, jwt.MapClaims{
		"userId":  float64(1),
		"isAdmin": true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customerToken)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCanAccess(t *testing.T) {
	customer := AuthUser{UserID: 7}
	admin := AuthUser{UserID: 1, IsAdmin: true}

	assert.True(t, customer.CanAccess(7))
	assert.False(t, customer.CanAccess(8))
	assert.True(t, admin.CanAccess(7))
	assert.True(t, admin.CanAccess(1))
}
