package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopapi/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID primitive.ObjectID, role string, ttl time.Duration) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   userID.Hex(),
		"email": "jane@example.com",
		"role":  role,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func authTestRouter(captured *AuthUser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		au, _ := CurrentUser(c)
		*captured = au
		c.Status(http.StatusOK)
	})
	r.DELETE("/admin", Auth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthValidToken(t *testing.T) {
	var captured AuthUser
	r := authTestRouter(&captured)

	userID := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, models.RoleUser, time.Minute))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, captured.ID)
	assert.Equal(t, "jane@example.com", captured.Email)
	assert.False(t, captured.IsAdmin())
}

func TestAuthRejections(t *testing.T) {
	var captured AuthUser
	r := authTestRouter(&captured)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + signToken(t, primitive.NewObjectID(), models.RoleUser, -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	var captured AuthUser
	r := authTestRouter(&captured)

	req := httptest.NewRequest("DELETE", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, primitive.NewObjectID(), models.RoleUser, time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("DELETE", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, primitive.NewObjectID(), models.RoleAdmin, time.Minute))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
