package commission

import (
	"context"
	"errors"

	"github.com/editora/backend/internal/domain/commission"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ConfigService manages the global admin commission configuration
type ConfigService struct {
	configRepo commission.AdminConfigRepository
}

// NewConfigService creates a new ConfigService
func NewConfigService(configRepo commission.AdminConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// Get returns the tenant's active admin configuration
func (s *ConfigService) Get(ctx context.Context, tenantID uuid.UUID) (*AdminConfigResponse, error) {
	config, err := s.configRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	response := ToAdminConfigResponse(config)
	return &response, nil
}

// Upsert creates or replaces the tenant's admin configuration
func (s *ConfigService) Upsert(ctx context.Context, tenantID uuid.UUID, req UpsertAdminConfigRequest) (*AdminConfigResponse, error) {
	existing, err := s.configRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.AdminID = req.AdminID
		if err := existing.UpdatePercent(req.Percent); err != nil {
			return nil, err
		}
		if err := s.configRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		response := ToAdminConfigResponse(existing)
		return &response, nil
	}

	config, err := commission.NewAdminConfig(tenantID, req.AdminID, req.Percent)
	if err != nil {
		return nil, err
	}
	if err := s.configRepo.Save(ctx, config); err != nil {
		return nil, err
	}
	response := ToAdminConfigResponse(config)
	return &response, nil
}

// Deactivate disables the tenant's admin configuration. Allocation will
// fail fast until a new configuration is saved.
func (s *ConfigService) Deactivate(ctx context.Context, tenantID uuid.UUID) error {
	config, err := s.configRepo.FindActiveForTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	config.Deactivate()
	return s.configRepo.Save(ctx, config)
}
