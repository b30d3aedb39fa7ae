package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bondledger/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID")})
	})
	r.GET("/admin", AdminAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func doAuthRequest(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	r := setupAuthRouter()

	user := &models.User{Email: "auth@example.com", Username: "authuser"}
	user.ID = 42
	token, err := GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	t.Run("valid_token", func(t *testing.T) {
		rec := doAuthRequest(r, "/me", "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doAuthRequest(r, "/me", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("malformed_header", func(t *testing.T) {
		rec := doAuthRequest(r, "/me", "Token "+token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage_token", func(t *testing.T) {
		rec := doAuthRequest(r, "/me", "Bearer not-a-jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("admin_token_rejected_on_user_route", func(t *testing.T) {
		adminToken, err := GenerateAdminToken()
		if err != nil {
			t.Fatalf("GenerateAdminToken: %v", err)
		}
		rec := doAuthRequest(r, "/me", "Bearer "+adminToken)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestAdminAuthMiddleware(t *testing.T) {
	r := setupAuthRouter()

	t.Run("valid_admin_token", func(t *testing.T) {
		token, err := GenerateAdminToken()
		if err != nil {
			t.Fatalf("GenerateAdminToken: %v", err)
		}
		rec := doAuthRequest(r, "/admin", "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("user_token_rejected", func(t *testing.T) {
		user := &models.User{Email: "auth@example.com", Username: "authuser"}
		user.ID = 7
		token, err := GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("GenerateAccessToken: %v", err)
		}
		rec := doAuthRequest(r, "/admin", "Bearer "+token)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
		}
	})

	t.Run("missing_header", func(t *testing.T) {
		rec := doAuthRequest(r, "/admin", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}
