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

	"github.com/rtdacademy/gradebook-api/internal/models"
	"github.com/rtdacademy/gradebook-api/internal/service"
)

func testRouter(authSvc *service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWT(authSvc)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/students/:email/summary", handlers...)
	return r
}

func bearerToken(t *testing.T, secret, email string, role models.UserRole) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.JWTClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestJWTMissingHeader(t *testing.T) {
	r := testRouter(service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/jane@x.ca/summary", nil)

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTInvalidToken(t *testing.T) {
	r := testRouter(service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/jane@x.ca/summary", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelfOrStaffAllowsOwnRecords(t *testing.T) {
	authSvc := service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil)
	r := testRouter(authSvc, SelfOrStaff())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/jane@x.ca/summary", nil)
	req.Header.Set("Authorization", bearerToken(t, "secret", "jane@x.ca", models.RoleStudent))

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSelfOrStaffBlocksOtherStudents(t *testing.T) {
	authSvc := service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil)
	r := testRouter(authSvc, SelfOrStaff())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/other@x.ca/summary", nil)
	req.Header.Set("Authorization", bearerToken(t, "secret", "jane@x.ca", models.RoleStudent))

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSelfOrStaffAllowsTeachers(t *testing.T) {
	authSvc := service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil)
	r := testRouter(authSvc, SelfOrStaff())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/other@x.ca/summary", nil)
	req.Header.Set("Authorization", bearerToken(t, "secret", "teacher@x.ca", models.RoleTeacher))

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireStaffBlocksStudents(t *testing.T) {
	authSvc := service.NewAuthService(service.AuthConfig{Secret: "secret"}, nil)
	r := testRouter(authSvc, RequireStaff())
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/students/jane@x.ca/summary", nil)
	req.Header.Set("Authorization", bearerToken(t, "secret", "jane@x.ca", models.RoleStudent))

	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
