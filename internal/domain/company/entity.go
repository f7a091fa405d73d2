package company

import (
	"time"

	"github.com/shopspring/decimal"
)

type Company struct {
	CompanyCode   int64
	Name          string
	CEO           string
	Turnover      decimal.Decimal
	Website       string
	StockExchange string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// LatestStockPrice is filled from the stock query service on every read
	// and is never written to the store.
	LatestStockPrice decimal.NullDecimal
}
