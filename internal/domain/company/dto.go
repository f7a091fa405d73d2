package company

import (
	"time"

	"github.com/estock-market/company-service/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CompanyResponse struct {
	CompanyCode      int64               `json:"company_code"`
	Name             string              `json:"company_name"`
	CEO              string              `json:"company_ceo"`
	Turnover         decimal.Decimal     `json:"company_turnover"`
	Website          string              `json:"company_website"`
	StockExchange    string              `json:"stock_exchange"`
	LatestStockPrice decimal.NullDecimal `json:"latest_stock_price"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func NewCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		CompanyCode:      c.CompanyCode,
		Name:             c.Name,
		CEO:              c.CEO,
		Turnover:         c.Turnover,
		Website:          c.Website,
		StockExchange:    c.StockExchange,
		LatestStockPrice: c.LatestStockPrice,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

type CreateCompanyRequest struct {
	CompanyCode   int64           `json:"company_code"`
	Name          string          `json:"company_name"`
	CEO           string          `json:"company_ceo"`
	Turnover      decimal.Decimal `json:"company_turnover"`
	Website       string          `json:"company_website"`
	StockExchange string          `json:"stock_exchange"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.CompanyCode <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_code",
			Message: "company_code must be a positive number",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.CEO) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_ceo",
			Message: "company_ceo is required",
		})
	} else if len(r.CEO) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_ceo",
			Message: "company_ceo must not exceed 255 characters",
		})
	}

	if r.Turnover.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "company_turnover",
			Message: "company_turnover must not be negative",
		})
	}

	if !validator.IsValidWebsite(r.Website) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_website",
			Message: "company_website must be a valid http or https URL",
		})
	}

	if validator.IsEmpty(r.StockExchange) {
		errs = append(errs, validator.ValidationError{
			Field:   "stock_exchange",
			Message: "stock_exchange is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToCompany converts the request into an entity ready to persist.
func (r *CreateCompanyRequest) ToCompany() Company {
	return Company{
		CompanyCode:   r.CompanyCode,
		Name:          r.Name,
		CEO:           r.CEO,
		Turnover:      r.Turnover,
		Website:       r.Website,
		StockExchange: r.StockExchange,
	}
}
