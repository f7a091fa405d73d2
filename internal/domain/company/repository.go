package company

import "context"

// CompanyRepository persists companies keyed by company code.
// FindByID and Delete return ErrCompanyNotFound on a miss.
type CompanyRepository interface {
	Save(ctx context.Context, c Company) (Company, error)
	FindByID(ctx context.Context, companyCode int64) (Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	Delete(ctx context.Context, companyCode int64) error
}
