package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	commissionapp "github.com/editora/backend/internal/application/commission"
	partnerapp "github.com/editora/backend/internal/application/partner"
	pricingapp "github.com/editora/backend/internal/application/pricing"
	shippingapp "github.com/editora/backend/internal/application/shipping"
	tradeapp "github.com/editora/backend/internal/application/trade"
	"github.com/editora/backend/internal/infrastructure/auth"
	"github.com/editora/backend/internal/infrastructure/cache"
	"github.com/editora/backend/internal/infrastructure/config"
	"github.com/editora/backend/internal/infrastructure/logger"
	"github.com/editora/backend/internal/infrastructure/persistence"
	"github.com/editora/backend/internal/infrastructure/persistence/tenant"
	"github.com/editora/backend/internal/interfaces/http/handler"
	"github.com/editora/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Editora Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Second line of defense behind the repositories' explicit tenant
	// filters: queries reaching the handle without a tenant_id
	// condition pick one up from the request context. Not required,
	// so startup seeding and the commission sweep pass through.
	tenant.EnableAutoTenantFilter(db.DB, false)

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	tierRepo := persistence.NewGormDiscountTierRepository(db.DB)
	recordRepo := persistence.NewGormCommissionRecordRepository(db.DB)
	configRepo := persistence.NewGormAdminConfigRepository(db.DB)
	batchRepo := persistence.NewGormPaymentBatchRepository(db.DB)

	// Idempotency store for payment gateway callback deduplication.
	// Production deployments require Redis; the in-memory fallback is
	// for local development only.
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Token blacklist backed by the same Redis instance
	tokenBlacklist := newTokenBlacklist(cfg.Redis, log)

	// Application services
	promotionalPercent := decimal.NewFromFloat(cfg.Pricing.PromotionalPercent)
	quoteService := pricingapp.NewQuoteService(customerRepo, tierRepo, promotionalPercent)
	tierService := pricingapp.NewTierService(tierRepo)
	shippingService := shippingapp.NewQuoteService()
	customerService := partnerapp.NewCustomerService(customerRepo, vendorRepo)
	vendorService := partnerapp.NewVendorService(vendorRepo)
	allocationService := commissionapp.NewAllocationService(saleRepo, vendorRepo, recordRepo, configRepo, log)
	saleService := tradeapp.NewSaleService(saleRepo, customerRepo, quoteService, allocationService, log)
	backfillService := commissionapp.NewBackfillService(saleRepo, allocationService, log)
	configService := commissionapp.NewConfigService(configRepo)
	payoutService := commissionapp.NewPayoutService(recordRepo, batchRepo, cfg.Commission.HoldingPeriodDays, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Periodic reconciliation: backfill missed allocations and release
	// records whose holding period has elapsed
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Commission.BackfillInterval > 0 {
		go runCommissionSweep(sweepCtx, cfg.Commission, saleRepo, backfillService, payoutService, log)
		log.Info("Commission sweep scheduled",
			zap.Duration("interval", cfg.Commission.BackfillInterval),
			zap.Int("lookback_days", cfg.Commission.BackfillLookbackDays),
		)
	}

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		Logger:                 log,
		JWTService:             jwtService,
		TokenBlacklist:         tokenBlacklist,
		PricingHandler:         handler.NewPricingHandler(quoteService, tierService, log),
		ShippingHandler:        handler.NewShippingHandler(shippingService, log),
		CustomerHandler:        handler.NewCustomerHandler(customerService, log),
		VendorHandler:          handler.NewVendorHandler(vendorService, log),
		SaleHandler:            handler.NewSaleHandler(saleService, log),
		CommissionHandler:      handler.NewCommissionHandler(allocationService, backfillService, configService, payoutService, log),
		PaymentCallbackHandler: handler.NewPaymentCallbackHandler(saleService, idempotencyStore, log),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newTokenBlacklist connects to Redis for token revocation, falling back
// to the in-memory blacklist when Redis is unreachable.
func newTokenBlacklist(cfg config.RedisConfig, log *zap.Logger) auth.TokenBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		_ = client.Close()
		return auth.NewInMemoryTokenBlacklist()
	}
	return auth.NewRedisTokenBlacklistWithClient(client)
}

// runCommissionSweep periodically backfills missed commission allocations
// and releases records past their holding period, tenant by tenant.
func runCommissionSweep(
	ctx context.Context,
	cfg config.CommissionConfig,
	saleRepo *persistence.GormSaleRepository,
	backfill *commissionapp.BackfillService,
	payout *commissionapp.PayoutService,
	log *zap.Logger,
) {
	ticker := time.NewTicker(cfg.BackfillInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		tenants, err := saleRepo.TenantIDs(ctx)
		if err != nil {
			log.Error("Commission sweep failed to list tenants", zap.Error(err))
			continue
		}

		now := time.Now()
		from := now.AddDate(0, 0, -cfg.BackfillLookbackDays)
		for _, tenantID := range tenants {
			result, err := backfill.Run(ctx, tenantID, from, now)
			if err != nil {
				log.Error("Backfill sweep failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err))
			} else if result.RecordsCreated > 0 {
				log.Info("Backfill sweep recovered records",
					zap.String("tenant_id", tenantID.String()),
					zap.Int("records_created", result.RecordsCreated),
					zap.Int("sales_processed", result.SalesProcessed),
				)
			}

			released, err := payout.ReleaseDue(ctx, tenantID, now)
			if err != nil {
				log.Error("Release sweep failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err))
			} else if released > 0 {
				log.Info("Release sweep promoted records",
					zap.String("tenant_id", tenantID.String()),
					zap.Int("released", released),
				)
			}
		}
	}
}
