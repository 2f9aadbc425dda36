package pricing

import (
	"time"

	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Standard reseller tier codes
const (
	TierCodeBronze = "bronze"
	TierCodePrata  = "prata"
	TierCodeOuro   = "ouro"
)

// Tier is a Value Object representing one reseller discount tier:
// carts at or above the threshold earn the tier's percentage.
type Tier struct {
	code      string
	name      string
	threshold decimal.Decimal
	percent   decimal.Decimal
}

// NewTier creates a tier with the given threshold and discount percentage
func NewTier(code, name string, threshold, percent decimal.Decimal) (Tier, error) {
	if code == "" {
		return Tier{}, shared.NewDomainError("INVALID_TIER", "Tier code cannot be empty")
	}
	if threshold.IsNegative() {
		return Tier{}, shared.NewDomainError("INVALID_TIER", "Tier threshold cannot be negative")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return Tier{}, shared.NewDomainError("INVALID_TIER", "Tier percentage must be between 0 and 100")
	}
	return Tier{code: code, name: name, threshold: threshold, percent: percent}, nil
}

// Code returns the tier code
func (t Tier) Code() string { return t.code }

// Name returns the tier display name
func (t Tier) Name() string { return t.name }

// Threshold returns the minimum cart subtotal for this tier
func (t Tier) Threshold() decimal.Decimal { return t.threshold }

// Percent returns the discount percentage granted by this tier
func (t Tier) Percent() decimal.Decimal { return t.percent }

// TierTable holds the ascending tier ladder for a tenant.
// Thresholds and percentages are configuration data owned by the caller;
// the resolver only consumes them.
type TierTable struct {
	tiers []Tier
}

// NewTierTable builds a table from tiers ordered by ascending threshold.
// Both thresholds and percentages must be strictly ascending so that a
// bigger cart can never earn a smaller discount.
func NewTierTable(tiers []Tier) (TierTable, error) {
	for i := 1; i < len(tiers); i++ {
		if !tiers[i].threshold.GreaterThan(tiers[i-1].threshold) {
			return TierTable{}, shared.NewDomainError("INVALID_TIER_TABLE", "Tier thresholds must be strictly ascending")
		}
		if !tiers[i].percent.GreaterThan(tiers[i-1].percent) {
			return TierTable{}, shared.NewDomainError("INVALID_TIER_TABLE", "Tier percentages must be strictly ascending")
		}
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return TierTable{tiers: out}, nil
}

// DefaultTierTable returns the standard reseller ladder:
// Bronze 299.90 -> 20%, Prata 499.90 -> 25%, Ouro 699.90 -> 30%.
func DefaultTierTable() TierTable {
	bronze, _ := NewTier(TierCodeBronze, "Bronze", decimal.NewFromFloat(299.90), decimal.NewFromInt(20))
	prata, _ := NewTier(TierCodePrata, "Prata", decimal.NewFromFloat(499.90), decimal.NewFromInt(25))
	ouro, _ := NewTier(TierCodeOuro, "Ouro", decimal.NewFromFloat(699.90), decimal.NewFromInt(30))
	table, _ := NewTierTable([]Tier{bronze, prata, ouro})
	return table
}

// Tiers returns a copy of the tier ladder
func (tt TierTable) Tiers() []Tier {
	out := make([]Tier, len(tt.tiers))
	copy(out, tt.tiers)
	return out
}

// IsEmpty returns true when no tiers are configured
func (tt TierTable) IsEmpty() bool {
	return len(tt.tiers) == 0
}

// TierFor returns the highest tier whose threshold the subtotal reaches.
// A subtotal exactly equal to a threshold takes that tier (closed-open
// interval boundaries). Returns false when the subtotal is below the
// lowest threshold.
func (tt TierTable) TierFor(subtotal decimal.Decimal) (Tier, bool) {
	for i := len(tt.tiers) - 1; i >= 0; i-- {
		if subtotal.GreaterThanOrEqual(tt.tiers[i].threshold) {
			return tt.tiers[i], true
		}
	}
	return Tier{}, false
}

// DiscountTierRecord represents a row in the discount_tiers database table.
// This is used for GORM persistence of per-tenant tier configuration.
type DiscountTierRecord struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Code      string
	Name      string
	Threshold decimal.Decimal
	Percent   decimal.Decimal
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToTier converts a database record to a Tier value object
func (r *DiscountTierRecord) ToTier() (Tier, error) {
	return NewTier(r.Code, r.Name, r.Threshold, r.Percent)
}

// NewDiscountTierRecord creates a record for database insertion
func NewDiscountTierRecord(tenantID uuid.UUID, tier Tier, sortOrder int) *DiscountTierRecord {
	now := time.Now()
	return &DiscountTierRecord{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Code:      tier.Code(),
		Name:      tier.Name(),
		Threshold: tier.Threshold(),
		Percent:   tier.Percent(),
		SortOrder: sortOrder,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultDiscountTierRecords returns the default tier records for a new tenant
func DefaultDiscountTierRecords(tenantID uuid.UUID) []*DiscountTierRecord {
	tiers := DefaultTierTable().Tiers()
	records := make([]*DiscountTierRecord, len(tiers))
	for i, tier := range tiers {
		records[i] = NewDiscountTierRecord(tenantID, tier, i)
	}
	return records
}

// TableFromRecords builds a TierTable from active records sorted by threshold
func TableFromRecords(records []*DiscountTierRecord) (TierTable, error) {
	tiers := make([]Tier, 0, len(records))
	for _, r := range records {
		if !r.IsActive {
			continue
		}
		tier, err := r.ToTier()
		if err != nil {
			return TierTable{}, err
		}
		tiers = append(tiers, tier)
	}
	return NewTierTable(tiers)
}
