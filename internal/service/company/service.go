package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/estock-market/company-service/internal/domain/company"
	"golang.org/x/sync/errgroup"
)

type CompanyServiceImpl struct {
	companyRepo   company.CompanyRepository
	priceClient   company.PriceClient
	commandClient company.CommandClient

	// enrichConcurrency bounds the price calls GetAllCompanies runs at once.
	// 1 keeps them strictly sequential.
	enrichConcurrency int
}

func NewCompanyService(
	companyRepo company.CompanyRepository,
	priceClient company.PriceClient,
	commandClient company.CommandClient,
	enrichConcurrency int,
) company.CompanyService {
	if enrichConcurrency < 1 {
		enrichConcurrency = 1
	}
	return &CompanyServiceImpl{
		companyRepo:       companyRepo,
		priceClient:       priceClient,
		commandClient:     commandClient,
		enrichConcurrency: enrichConcurrency,
	}
}

// AddCompany implements company.CompanyService.
func (s *CompanyServiceImpl) AddCompany(ctx context.Context, c company.Company) (company.Company, error) {
	slog.Info("Adding company in db", "company_code", c.CompanyCode, "company_name", c.Name)

	saved, err := s.companyRepo.Save(ctx, c)
	if err != nil {
		slog.Error("Failed to add company", "company_code", c.CompanyCode, "error", err)
		return company.Company{}, &company.NotCreatedError{CompanyCode: c.CompanyCode, Err: err}
	}
	return saved, nil
}

// GetCompany implements company.CompanyService.
// Every failure, including a failed price lookup, is reported as not found.
func (s *CompanyServiceImpl) GetCompany(ctx context.Context, companyCode int64) (company.Company, error) {
	slog.Info("Searching company in db", "company_code", companyCode)

	found, err := s.findCompany(ctx, companyCode)
	if err != nil {
		return company.Company{}, err
	}
	slog.Info("Searched company in db", "company_code", found.CompanyCode, "company_name", found.Name)

	price, err := s.priceClient.LatestPrice(ctx, companyCode)
	if err != nil {
		slog.Error("Failed to enrich company with stock price", "company_code", companyCode, "error", err)
		return company.Company{}, &company.NotFoundError{
			CompanyCode: companyCode,
			Reason:      company.ReasonUpstream,
			Err:         err,
		}
	}
	found.LatestStockPrice = price

	return found, nil
}

// GetAllCompanies implements company.CompanyService.
// Results keep the store's order. One failed lookup fails the whole call.
func (s *CompanyServiceImpl) GetAllCompanies(ctx context.Context) ([]company.Company, error) {
	all, err := s.companyRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list companies", "error", err)
		return nil, &company.NotFoundError{Reason: company.ReasonStore, Err: err}
	}

	companies := make([]company.Company, len(all))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichConcurrency)

	for i, c := range all {
		i := i
		code := c.CompanyCode
		g.Go(func() error {
			// stop issuing calls once another lookup has failed
			if err := gCtx.Err(); err != nil {
				return err
			}
			enriched, err := s.GetCompany(gCtx, code)
			if err != nil {
				return err
			}
			companies[i] = enriched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return companies, nil
}

// DeleteCompany implements company.CompanyService.
// The stock command service is notified best-effort: its failure is logged
// and the company is deleted anyway. Nothing is rolled back if the store
// delete fails after the notification went out.
func (s *CompanyServiceImpl) DeleteCompany(ctx context.Context, companyCode int64) error {
	if _, err := s.findCompany(ctx, companyCode); err != nil {
		return err
	}

	if err := s.commandClient.DeleteStocks(ctx, companyCode); err != nil {
		slog.Warn("Stock command service notification failed, deleting company anyway",
			"company_code", companyCode, "error", err)
	}

	if err := s.companyRepo.Delete(ctx, companyCode); err != nil {
		slog.Error("Failed to delete company", "company_code", companyCode, "error", err)
		return fmt.Errorf("failed to delete company %d: %w", companyCode, err)
	}

	slog.Info("Deleted company", "company_code", companyCode)
	return nil
}

func (s *CompanyServiceImpl) findCompany(ctx context.Context, companyCode int64) (company.Company, error) {
	found, err := s.companyRepo.FindByID(ctx, companyCode)
	if err == nil {
		return found, nil
	}

	if errors.Is(err, company.ErrCompanyNotFound) {
		nf := company.NewNotFound(companyCode)
		slog.Error("Company not found", "company_code", companyCode, "error", nf)
		return company.Company{}, nf
	}

	slog.Error("Failed to load company", "company_code", companyCode, "error", err)
	return company.Company{}, &company.NotFoundError{
		CompanyCode: companyCode,
		Reason:      company.ReasonStore,
		Err:         err,
	}
}
