package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupTenantRouter(cfg TenantMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TenantMiddlewareWithConfig(cfg))
	r.GET("/api/v1/sales", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestTenantMiddleware(t *testing.T) {
	tenantID := uuid.New().String()

	t.Run("extracts tenant from header", func(t *testing.T) {
		router := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		req.Header.Set(TenantHeaderKey, tenantID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID)
	})

	t.Run("JWT claim takes priority over header", func(t *testing.T) {
		jwtTenant := uuid.New().String()
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(JWTTenantIDKey, jwtTenant)
		})
		r.Use(TenantMiddlewareWithConfig(DefaultTenantConfig()))
		r.GET("/api/v1/sales", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		req.Header.Set(TenantHeaderKey, tenantID)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), jwtTenant)
		assert.NotContains(t, w.Body.String(), tenantID)
	})

	t.Run("rejects malformed tenant ID", func(t *testing.T) {
		router := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects missing tenant when required", func(t *testing.T) {
		router := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("allows missing tenant when optional", func(t *testing.T) {
		cfg := DefaultTenantConfig()
		cfg.Required = false
		router := setupTenantRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("skip paths bypass tenant requirement", func(t *testing.T) {
		router := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestGetTenantUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	id, err := GetTenantUUID(c)
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)

	want := uuid.New()
	c.Set(TenantIDKey, want.String())
	id, err = GetTenantUUID(c)
	assert.NoError(t, err)
	assert.Equal(t, want, id)
}
