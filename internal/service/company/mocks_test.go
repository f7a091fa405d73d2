package company

import (
	"context"
	"sort"
	"sync"

	"github.com/estock-market/company-service/internal/domain/company"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCompanyRepository is a mock implementation of company.CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Save(ctx context.Context, c company.Company) (company.Company, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, companyCode int64) (company.Company, error) {
	args := m.Called(ctx, companyCode)
	return args.Get(0).(company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context) ([]company.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, companyCode int64) error {
	args := m.Called(ctx, companyCode)
	return args.Error(0)
}

// MockPriceClient is a mock implementation of company.PriceClient
type MockPriceClient struct {
	mock.Mock
}

func (m *MockPriceClient) LatestPrice(ctx context.Context, companyCode int64) (decimal.NullDecimal, error) {
	args := m.Called(ctx, companyCode)
	return args.Get(0).(decimal.NullDecimal), args.Error(1)
}

// MockCommandClient is a mock implementation of company.CommandClient
type MockCommandClient struct {
	mock.Mock
}

func (m *MockCommandClient) DeleteStocks(ctx context.Context, companyCode int64) error {
	args := m.Called(ctx, companyCode)
	return args.Error(0)
}

// memoryRepository is an in-memory company.CompanyRepository for round-trip tests.
type memoryRepository struct {
	mu        sync.Mutex
	companies map[int64]company.Company
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{companies: make(map[int64]company.Company)}
}

func (r *memoryRepository) Save(_ context.Context, c company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.LatestStockPrice = decimal.NullDecimal{}
	r.companies[c.CompanyCode] = c
	return c, nil
}

func (r *memoryRepository) FindByID(_ context.Context, companyCode int64) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[companyCode]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]company.Company, 0, len(r.companies))
	for _, c := range r.companies {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CompanyCode < all[j].CompanyCode })
	return all, nil
}

func (r *memoryRepository) Delete(_ context.Context, companyCode int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[companyCode]; !ok {
		return company.ErrCompanyNotFound
	}
	delete(r.companies, companyCode)
	return nil
}
