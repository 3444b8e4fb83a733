package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWT(), func(c *gin.Context) {
		uid, _ := c.Get("user_id")
		c.JSON(200, gin.H{"user_id": uid})
	})
	r.GET("/admin", JWT(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func TestJWTMiddleware(t *testing.T) {
	service.InitJWT("test-secret")
	r := setupRouter()

	// no token
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/private", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: got %d; want 401", w.Code)
	}

	// valid token
	token, err := service.GenerateJWT(9, false)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("valid token: got %d; want 200", w.Code)
	}

	// garbage token
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/private", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: got %d; want 401", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	service.InitJWT("test-secret")
	r := setupRouter()

	userToken, _ := service.GenerateJWT(1, false)
	adminToken, _ := service.GenerateJWT(2, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin: got %d; want 403", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin: got %d; want 200", w.Code)
	}
}
