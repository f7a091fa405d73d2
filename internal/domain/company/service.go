package company

import (
	"context"

	"github.com/shopspring/decimal"
)

type CompanyService interface {
	AddCompany(ctx context.Context, c Company) (Company, error)
	GetCompany(ctx context.Context, companyCode int64) (Company, error)
	GetAllCompanies(ctx context.Context) ([]Company, error)
	DeleteCompany(ctx context.Context, companyCode int64) error
}

// PriceClient fetches the latest stock price for a company.
// An invalid NullDecimal means the stock service had no price to report.
type PriceClient interface {
	LatestPrice(ctx context.Context, companyCode int64) (decimal.NullDecimal, error)
}

// CommandClient tells the stock command service that a company is gone.
type CommandClient interface {
	DeleteStocks(ctx context.Context, companyCode int64) error
}
