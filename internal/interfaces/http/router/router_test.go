package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/editora/backend/internal/application/shipping"
	"github.com/editora/backend/internal/infrastructure/auth"
	"github.com/editora/backend/internal/infrastructure/config"
	"github.com/editora/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "editora-test",
	})
	return New(Config{
		JWTService:             jwtService,
		PricingHandler:         handler.NewPricingHandler(nil, nil, nil),
		ShippingHandler:        handler.NewShippingHandler(shipping.NewQuoteService(), nil),
		CustomerHandler:        handler.NewCustomerHandler(nil, nil),
		VendorHandler:          handler.NewVendorHandler(nil, nil),
		SaleHandler:            handler.NewSaleHandler(nil, nil),
		CommissionHandler:      handler.NewCommissionHandler(nil, nil, nil, nil, nil),
		PaymentCallbackHandler: handler.NewPaymentCallbackHandler(nil, nil, nil),
	})
}

func TestRouter(t *testing.T) {
	router := newTestRouter()

	t.Run("health is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	t.Run("API routes require authentication", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/sales",
			"/api/v1/customers",
			"/api/v1/vendors",
			"/api/v1/pricing/tiers",
			"/api/v1/commissions/records",
		} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		}
	})

	t.Run("payment callback bypasses authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payment/callback", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		// Binding fails on the empty payload, but the request reached the handler
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
