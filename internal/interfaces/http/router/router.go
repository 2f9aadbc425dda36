package router

import (
	"net/http"

	"github.com/editora/backend/internal/infrastructure/auth"
	"github.com/editora/backend/internal/infrastructure/logger"
	"github.com/editora/backend/internal/interfaces/http/handler"
	"github.com/editora/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config wires handlers and middleware dependencies into the router
type Config struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	PricingHandler         *handler.PricingHandler
	ShippingHandler        *handler.ShippingHandler
	CustomerHandler        *handler.CustomerHandler
	VendorHandler          *handler.VendorHandler
	SaleHandler            *handler.SaleHandler
	CommissionHandler      *handler.CommissionHandler
	PaymentCallbackHandler *handler.PaymentCallbackHandler
}

// New builds the gin engine with all routes registered
func New(cfg Config) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	engine.GET("/health", healthCheck)

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = log

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	api.Use(middleware.TenantMiddleware())

	// Gateway callbacks authenticate by payload signature, not JWT
	api.POST("/payment/callback", cfg.PaymentCallbackHandler.Handle)

	registerPricingRoutes(api, cfg.PricingHandler)
	registerShippingRoutes(api, cfg.ShippingHandler)
	registerPartnerRoutes(api, cfg.CustomerHandler, cfg.VendorHandler)
	registerSaleRoutes(api, cfg.SaleHandler)
	registerCommissionRoutes(api, cfg.CommissionHandler)

	return engine
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func registerPricingRoutes(api *gin.RouterGroup, h *handler.PricingHandler) {
	pricing := api.Group("/pricing")
	{
		pricing.POST("/quote", h.Quote)
		pricing.GET("/tiers", h.ListTiers)
		pricing.POST("/tiers", h.CreateTier)
		pricing.POST("/tiers/initialize", h.InitializeTiers)
		pricing.PUT("/tiers/:id", h.UpdateTier)
		pricing.DELETE("/tiers/:id", h.DeleteTier)
	}
}

func registerShippingRoutes(api *gin.RouterGroup, h *handler.ShippingHandler) {
	api.POST("/shipping/quote", h.Quote)
}

func registerPartnerRoutes(api *gin.RouterGroup, customers *handler.CustomerHandler, vendors *handler.VendorHandler) {
	customerGroup := api.Group("/customers")
	{
		customerGroup.POST("", customers.Create)
		customerGroup.GET("", customers.List)
		customerGroup.GET("/:id", customers.Get)
		customerGroup.PUT("/:id", customers.Update)
		customerGroup.PUT("/:id/category-rates", customers.SetCategoryRate)
		customerGroup.POST("/:id/activate", customers.Activate)
		customerGroup.POST("/:id/deactivate", customers.Deactivate)
	}

	vendorGroup := api.Group("/vendors")
	{
		vendorGroup.POST("", vendors.Create)
		vendorGroup.GET("", vendors.List)
		vendorGroup.GET("/:id", vendors.Get)
		vendorGroup.PUT("/:id/manager", vendors.AssignManager)
		vendorGroup.DELETE("/:id/manager", vendors.RemoveManager)
		vendorGroup.PUT("/:id/commission", vendors.SetCommission)
	}
}

func registerSaleRoutes(api *gin.RouterGroup, h *handler.SaleHandler) {
	sales := api.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.POST("/:id/confirm", h.ConfirmPayment)
		sales.POST("/:id/cancel", h.Cancel)
	}
}

func registerCommissionRoutes(api *gin.RouterGroup, h *handler.CommissionHandler) {
	commissions := api.Group("/commissions")
	{
		commissions.GET("/config", h.GetConfig)
		commissions.PUT("/config", h.UpsertConfig)
		commissions.DELETE("/config", h.DeactivateConfig)

		commissions.POST("/allocate/:saleId", h.AllocateSale)
		commissions.POST("/backfill", h.RunBackfill)

		commissions.GET("/records", h.ListRecords)
		commissions.POST("/release-due", h.ReleaseDue)
		commissions.POST("/records/:id/release", h.ReleaseRecord)
		commissions.POST("/records/:id/cancel", h.CancelRecord)

		commissions.POST("/batches", h.CreateBatch)
		commissions.GET("/batches/:id", h.GetBatch)
		commissions.POST("/batches/:id/settle", h.SettleBatch)
	}
}
