package company

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/estock-market/company-service/internal/domain/company"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func acme() company.Company {
	return company.Company{
		CompanyCode:   101,
		Name:          "Acme",
		CEO:           "Wile E. Coyote",
		Turnover:      decimal.NewFromInt(1_000_000),
		Website:       "https://acme.example.com",
		StockExchange: "NSE",
	}
}

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

type serviceMocks struct {
	repo    *MockCompanyRepository
	price   *MockPriceClient
	command *MockCommandClient
}

func newTestService(concurrency int) (company.CompanyService, serviceMocks) {
	m := serviceMocks{
		repo:    new(MockCompanyRepository),
		price:   new(MockPriceClient),
		command: new(MockCommandClient),
	}
	return NewCompanyService(m.repo, m.price, m.command, concurrency), m
}

func (m serviceMocks) assertExpectations(t *testing.T) {
	m.repo.AssertExpectations(t)
	m.price.AssertExpectations(t)
	m.command.AssertExpectations(t)
}

// ===== AddCompany =====

func TestAddCompany_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	input := acme()
	m.repo.On("Save", ctx, input).Return(input, nil)

	saved, err := service.AddCompany(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, input, saved)
	m.assertExpectations(t)
}

func TestAddCompany_StoreFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	storeErr := errors.New("connection refused")
	m.repo.On("Save", ctx, acme()).Return(company.Company{}, storeErr)

	_, err := service.AddCompany(ctx, acme())

	assert.ErrorIs(t, err, company.ErrCompanyNotCreated)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, company.ErrCompanyNotFound)
	assert.Equal(t, "connection refused", err.Error())
	m.assertExpectations(t)
}

// ===== GetCompany =====

func TestGetCompany_EnrichesWithLatestPrice(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.price.On("LatestPrice", ctx, int64(101)).Return(price("42.50"), nil)

	got, err := service.GetCompany(ctx, 101)

	require.NoError(t, err)
	assert.Equal(t, int64(101), got.CompanyCode)
	assert.Equal(t, "Acme", got.Name)
	assert.True(t, got.LatestStockPrice.Valid)
	assert.True(t, decimal.RequireFromString("42.50").Equal(got.LatestStockPrice.Decimal))
	m.assertExpectations(t)
}

func TestGetCompany_NoPriceAvailable(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.price.On("LatestPrice", ctx, int64(101)).Return(decimal.NullDecimal{}, nil)

	got, err := service.GetCompany(ctx, 101)

	require.NoError(t, err)
	assert.False(t, got.LatestStockPrice.Valid)
}

func TestGetCompany_NotFound(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(999)).Return(company.Company{}, company.ErrCompanyNotFound)

	_, err := service.GetCompany(ctx, 999)

	require.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.Equal(t, "Company Code 999 not found.", err.Error())

	var nf *company.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, company.ReasonAbsent, nf.Reason)
	m.price.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}

func TestGetCompany_PriceServiceFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	upstreamErr := errors.New("stock query service returned 503: unavailable")
	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.price.On("LatestPrice", ctx, int64(101)).Return(decimal.NullDecimal{}, upstreamErr)

	_, err := service.GetCompany(ctx, 101)

	require.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.ErrorIs(t, err, upstreamErr)
	assert.Equal(t, upstreamErr.Error(), err.Error())

	var nf *company.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, company.ReasonUpstream, nf.Reason)
	m.assertExpectations(t)
}

func TestGetCompany_StoreFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	storeErr := errors.New("failed to find company 101: conn closed")
	m.repo.On("FindByID", ctx, int64(101)).Return(company.Company{}, storeErr)

	_, err := service.GetCompany(ctx, 101)

	var nf *company.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, company.ReasonStore, nf.Reason)
	assert.Equal(t, storeErr.Error(), err.Error())
	m.price.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}

// ===== GetAllCompanies =====

func TestGetAllCompanies_PreservesStoreOrder(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(4)

	stored := []company.Company{
		{CompanyCode: 3, Name: "Three"},
		{CompanyCode: 1, Name: "One"},
		{CompanyCode: 2, Name: "Two"},
	}
	m.repo.On("FindAll", ctx).Return(stored, nil)
	for i, c := range stored {
		m.repo.On("FindByID", mock.Anything, c.CompanyCode).Return(c, nil).Once()
		// earlier codes answer slower so completion order differs from store order
		m.price.On("LatestPrice", mock.Anything, c.CompanyCode).
			After(time.Duration(len(stored)-i)*20*time.Millisecond).
			Return(decimal.NewNullDecimal(decimal.NewFromInt(c.CompanyCode*10)), nil).
			Once()
	}

	got, err := service.GetAllCompanies(ctx)

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, c := range stored {
		assert.Equal(t, c.CompanyCode, got[i].CompanyCode)
		assert.True(t, decimal.NewFromInt(c.CompanyCode*10).Equal(got[i].LatestStockPrice.Decimal))
	}
	m.price.AssertNumberOfCalls(t, "LatestPrice", len(stored))
	m.assertExpectations(t)
}

func TestGetAllCompanies_Sequential(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	stored := []company.Company{{CompanyCode: 10, Name: "Ten"}, {CompanyCode: 20, Name: "Twenty"}}
	m.repo.On("FindAll", ctx).Return(stored, nil)
	for _, c := range stored {
		m.repo.On("FindByID", mock.Anything, c.CompanyCode).Return(c, nil)
		m.price.On("LatestPrice", mock.Anything, c.CompanyCode).Return(price("1.00"), nil)
	}

	got, err := service.GetAllCompanies(ctx)

	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, []int64{got[0].CompanyCode, got[1].CompanyCode})
	m.assertExpectations(t)
}

func TestGetAllCompanies_FailsWholeCallOnOneEnrichmentFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	stored := []company.Company{{CompanyCode: 1}, {CompanyCode: 2}, {CompanyCode: 3}}
	m.repo.On("FindAll", ctx).Return(stored, nil)
	m.repo.On("FindByID", mock.Anything, int64(1)).Return(stored[0], nil)
	m.repo.On("FindByID", mock.Anything, int64(2)).Return(stored[1], nil)
	m.price.On("LatestPrice", mock.Anything, int64(1)).Return(price("5"), nil)
	m.price.On("LatestPrice", mock.Anything, int64(2)).Return(decimal.NullDecimal{}, errors.New("timeout"))

	got, err := service.GetAllCompanies(ctx)

	assert.Nil(t, got)
	require.ErrorIs(t, err, company.ErrCompanyNotFound)
	var nf *company.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, int64(2), nf.CompanyCode)
	assert.Equal(t, company.ReasonUpstream, nf.Reason)

	m.repo.AssertNotCalled(t, "FindByID", mock.Anything, int64(3))
	m.price.AssertNotCalled(t, "LatestPrice", mock.Anything, int64(3))
}

func TestGetAllCompanies_MissingCompanyFailsWholeCall(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(2)

	stored := []company.Company{{CompanyCode: 1}, {CompanyCode: 2}}
	m.repo.On("FindAll", ctx).Return(stored, nil)
	m.repo.On("FindByID", mock.Anything, int64(1)).Return(stored[0], nil).Maybe()
	m.repo.On("FindByID", mock.Anything, int64(2)).Return(company.Company{}, company.ErrCompanyNotFound)
	m.price.On("LatestPrice", mock.Anything, int64(1)).Return(price("5"), nil).Maybe()

	got, err := service.GetAllCompanies(ctx)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.Equal(t, "Company Code 2 not found.", err.Error())
}

func TestGetAllCompanies_StoreFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindAll", ctx).Return(nil, errors.New("failed to list companies: boom"))

	got, err := service.GetAllCompanies(ctx)

	assert.Nil(t, got)
	var nf *company.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, company.ReasonStore, nf.Reason)
}

func TestGetAllCompanies_Empty(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindAll", ctx).Return([]company.Company{}, nil)

	got, err := service.GetAllCompanies(ctx)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	m.price.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}

// ===== DeleteCompany =====

func TestDeleteCompany_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.command.On("DeleteStocks", ctx, int64(101)).Return(nil)
	m.repo.On("Delete", ctx, int64(101)).Return(nil)

	assert.NoError(t, service.DeleteCompany(ctx, 101))
	m.assertExpectations(t)
}

func TestDeleteCompany_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.command.On("DeleteStocks", ctx, int64(101)).Return(errors.New("stock command service returned 500"))
	m.repo.On("Delete", ctx, int64(101)).Return(nil)

	assert.NoError(t, service.DeleteCompany(ctx, 101))
	m.assertExpectations(t)
}

func TestDeleteCompany_NotFound(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	m.repo.On("FindByID", ctx, int64(999)).Return(company.Company{}, company.ErrCompanyNotFound)

	err := service.DeleteCompany(ctx, 999)

	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	assert.Equal(t, "Company Code 999 not found.", err.Error())
	m.command.AssertNotCalled(t, "DeleteStocks", mock.Anything, mock.Anything)
	m.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCompany_StoreDeleteFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(1)

	storeErr := errors.New("conn reset")
	m.repo.On("FindByID", ctx, int64(101)).Return(acme(), nil)
	m.command.On("DeleteStocks", ctx, int64(101)).Return(nil)
	m.repo.On("Delete", ctx, int64(101)).Return(storeErr)

	err := service.DeleteCompany(ctx, 101)

	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, company.ErrCompanyNotFound)
	m.assertExpectations(t)
}

// ===== Round trips =====

func TestAddThenGet_ReturnsPersistedFieldsAndLivePrice(t *testing.T) {
	ctx := context.Background()
	priceClient := new(MockPriceClient)
	commandClient := new(MockCommandClient)
	service := NewCompanyService(newMemoryRepository(), priceClient, commandClient, 2)

	priceClient.On("LatestPrice", ctx, int64(101)).Return(price("42.50"), nil)

	_, err := service.AddCompany(ctx, acme())
	require.NoError(t, err)

	got, err := service.GetCompany(ctx, 101)
	require.NoError(t, err)

	want := acme()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.CEO, got.CEO)
	assert.True(t, want.Turnover.Equal(got.Turnover))
	assert.Equal(t, want.Website, got.Website)
	assert.Equal(t, want.StockExchange, got.StockExchange)
	assert.True(t, decimal.RequireFromString("42.50").Equal(got.LatestStockPrice.Decimal))
}

func TestDeleteThenGet_NotFoundEvenWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	priceClient := new(MockPriceClient)
	commandClient := new(MockCommandClient)
	service := NewCompanyService(newMemoryRepository(), priceClient, commandClient, 1)

	commandClient.On("DeleteStocks", ctx, int64(101)).Return(errors.New("connection refused"))

	_, err := service.AddCompany(ctx, acme())
	require.NoError(t, err)

	require.NoError(t, service.DeleteCompany(ctx, 101))

	_, err = service.GetCompany(ctx, 101)
	assert.ErrorIs(t, err, company.ErrCompanyNotFound)
	priceClient.AssertNotCalled(t, "LatestPrice", mock.Anything, mock.Anything)
}

func TestNewCompanyService_ClampsConcurrency(t *testing.T) {
	service := NewCompanyService(newMemoryRepository(), new(MockPriceClient), new(MockCommandClient), 0)
	impl, ok := service.(*CompanyServiceImpl)
	require.True(t, ok)
	assert.Equal(t, 1, impl.enrichConcurrency)
}
