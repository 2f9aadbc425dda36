package partner

import (
	"context"
	"testing"

	"github.com/editora/backend/internal/domain/partner"
	"github.com/editora/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*partner.Customer, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]*partner.Customer), args.Get(1).(int64), args.Error(2)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

// MockVendorRepository is a mock implementation of partner.VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindManagerOf(ctx context.Context, tenantID, vendorID uuid.UUID) (*partner.Vendor, error) {
	args := m.Called(ctx, tenantID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*partner.Vendor, int64, error) {
	args := m.Called(ctx, tenantID, page, pageSize)
	return args.Get(0).([]*partner.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) Save(ctx context.Context, vendor *partner.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

// =============================================================================
// Tests
// =============================================================================

func TestCustomerServiceCreate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates a reseller account with documents", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		response, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name:    "Livraria Esperança",
			Email:   "contato@esperanca.com.br",
			Channel: "RESELLER",
			CNPJ:    "11.222.333/0001-81",
			CPF:     "529.982.247-25",
		})

		require.NoError(t, err)
		assert.Equal(t, "RESELLER", response.Channel)
		assert.Equal(t, "11.222.333/0001-81", response.CNPJ)
		assert.Equal(t, "529.982.247-25", response.CPF)
		assert.True(t, response.IsActive)
	})

	t.Run("rejects a malformed CNPJ", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		_, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name:    "Livraria Esperança",
			Channel: "RESELLER",
			CNPJ:    "11.222.333/0001-99",
		})

		assert.Error(t, err)
		customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("empty documents are accepted", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		customerRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

		response, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name:    "Igreja Batista Central",
			Channel: "DIRECT",
		})

		require.NoError(t, err)
		assert.Empty(t, response.CNPJ)
		assert.Empty(t, response.CPF)
	})

	t.Run("validates the originating vendor", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		vendorID := uuid.New()
		vendorRepo.On("FindByID", mock.Anything, tenantID, vendorID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(context.Background(), tenantID, CreateCustomerRequest{
			Name:     "Representada Ltda",
			Channel:  "REPRESENTATIVE",
			VendorID: &vendorID,
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("updates discount eligibility fields", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		customer, err := partner.NewCustomer(tenantID, "Livraria Central", partner.ChannelDirect)
		require.NoError(t, err)
		customerRepo.On("FindByID", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		customerRepo.On("Save", mock.Anything, customer).Return(nil)

		special := decimal.NewFromInt(15)
		eligible := true
		response, err := service.Update(context.Background(), tenantID, customer.ID, UpdateCustomerRequest{
			SpecialDiscountPercent: &special,
			PromotionalEligible:    &eligible,
		})

		require.NoError(t, err)
		assert.True(t, response.SpecialDiscountPercent.Equal(special))
		assert.True(t, response.PromotionalEligible)
	})

	t.Run("rejects an out-of-range percentage", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		customer, err := partner.NewCustomer(tenantID, "Livraria Central", partner.ChannelDirect)
		require.NoError(t, err)
		customerRepo.On("FindByID", mock.Anything, tenantID, customer.ID).Return(customer, nil)

		over := decimal.NewFromInt(120)
		_, err = service.Update(context.Background(), tenantID, customer.ID, UpdateCustomerRequest{
			B2BBracketPercent: &over,
		})

		assert.Error(t, err)
	})
}

func TestCustomerServiceSetCategoryRate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("sets and clears category rates", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		vendorRepo := new(MockVendorRepository)
		service := NewCustomerService(customerRepo, vendorRepo)

		customer, err := partner.NewCustomer(tenantID, "Representante Sul", partner.ChannelRepresentative)
		require.NoError(t, err)
		customerRepo.On("FindByID", mock.Anything, tenantID, customer.ID).Return(customer, nil)
		customerRepo.On("Save", mock.Anything, customer).Return(nil)

		response, err := service.SetCategoryRate(context.Background(), tenantID, customer.ID, SetCategoryRateRequest{
			Category: "books",
			Percent:  decimal.NewFromInt(30),
		})

		require.NoError(t, err)
		assert.True(t, response.CategoryRates["books"].Equal(decimal.NewFromInt(30)))

		response, err = service.SetCategoryRate(context.Background(), tenantID, customer.ID, SetCategoryRateRequest{
			Category: "books",
			Percent:  decimal.Zero,
		})

		require.NoError(t, err)
		assert.NotContains(t, response.CategoryRates, "books")
	})
}
