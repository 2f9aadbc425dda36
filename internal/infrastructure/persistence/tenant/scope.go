// Package tenant enforces row-level tenant isolation on the GORM handle.
//
// Repositories scope their queries explicitly through
// persistence.Database.WithTenant, which applies TenantScopeString.
// EnableAutoTenantFilter registers callbacks behind them as a second
// line of defense: any query that reaches the database without a
// tenant_id condition picks one up from the request context, e.g.
//
//	scopedDB := db.WithContext(ctx)
//	scopedDB.Find(&sales) // WHERE tenant_id = 'xxx' is auto-added
package tenant

import (
	"errors"

	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when a query needs a tenant and
// neither the statement nor the context carries one
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when the tenant ID in the context is
// not a UUID
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// TenantScopeString restricts a query to one tenant's rows. The tenant
// ID arrives as a string because it comes from a JWT claim or the
// X-Tenant-ID header.
func TenantScopeString(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
