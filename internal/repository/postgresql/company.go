package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/estock-market/company-service/internal/domain/company"
	"github.com/estock-market/company-service/internal/pkg/database"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"
)

const companyTable = "companies"

var companyColumns = []string{
	"company_code",
	"name",
	"ceo",
	"turnover",
	"website",
	"stock_exchange",
	"created_at",
	"updated_at",
}

// companyRow is the stored shape of a company; the stock price never reaches it.
type companyRow struct {
	CompanyCode   int64           `db:"company_code"`
	Name          string          `db:"name"`
	CEO           string          `db:"ceo"`
	Turnover      decimal.Decimal `db:"turnover"`
	Website       string          `db:"website"`
	StockExchange string          `db:"stock_exchange"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

func (r companyRow) toEntity() company.Company {
	return company.Company{
		CompanyCode:   r.CompanyCode,
		Name:          r.Name,
		CEO:           r.CEO,
		Turnover:      r.Turnover,
		Website:       r.Website,
		StockExchange: r.StockExchange,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// saveQuery upserts by company code so Save behaves the same for new and existing rows.
func saveQuery(c company.Company, now time.Time) squirrel.InsertBuilder {
	return builder().
		Insert(companyTable).
		Columns(companyColumns...).
		Values(c.CompanyCode, c.Name, c.CEO, c.Turnover, c.Website, c.StockExchange, now, now).
		Suffix(`ON CONFLICT (company_code) DO UPDATE SET
			name = EXCLUDED.name,
			ceo = EXCLUDED.ceo,
			turnover = EXCLUDED.turnover,
			website = EXCLUDED.website,
			stock_exchange = EXCLUDED.stock_exchange,
			updated_at = EXCLUDED.updated_at`).
		Suffix("RETURNING " + strings.Join(companyColumns, ", "))
}

func findByIDQuery(companyCode int64) squirrel.SelectBuilder {
	return builder().
		Select(companyColumns...).
		From(companyTable).
		Where(squirrel.Eq{"company_code": companyCode})
}

func findAllQuery() squirrel.SelectBuilder {
	return builder().
		Select(companyColumns...).
		From(companyTable).
		OrderBy("company_code ASC")
}

func deleteQuery(companyCode int64) squirrel.DeleteBuilder {
	return builder().
		Delete(companyTable).
		Where(squirrel.Eq{"company_code": companyCode})
}

// Save implements company.CompanyRepository.
func (c *companyRepositoryImpl) Save(ctx context.Context, newCompany company.Company) (company.Company, error) {
	sql, args, err := saveQuery(newCompany, time.Now().UTC()).ToSql()
	if err != nil {
		return company.Company{}, fmt.Errorf("build save query: %w", err)
	}

	var saved companyRow
	if err := pgxscan.Get(ctx, GetQuerier(ctx, c.db), &saved, sql, args...); err != nil {
		return company.Company{}, fmt.Errorf("failed to save company %d: %w", newCompany.CompanyCode, err)
	}
	return saved.toEntity(), nil
}

// FindByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) FindByID(ctx context.Context, companyCode int64) (company.Company, error) {
	sql, args, err := findByIDQuery(companyCode).ToSql()
	if err != nil {
		return company.Company{}, fmt.Errorf("build find query: %w", err)
	}

	var found companyRow
	if err := pgxscan.Get(ctx, GetQuerier(ctx, c.db), &found, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to find company %d: %w", companyCode, err)
	}
	return found.toEntity(), nil
}

// FindAll implements company.CompanyRepository.
func (c *companyRepositoryImpl) FindAll(ctx context.Context) ([]company.Company, error) {
	sql, args, err := findAllQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find all query: %w", err)
	}

	var rows []companyRow
	if err := pgxscan.Select(ctx, GetQuerier(ctx, c.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	companies := make([]company.Company, 0, len(rows))
	for _, row := range rows {
		companies = append(companies, row.toEntity())
	}
	return companies, nil
}

// Delete implements company.CompanyRepository.
func (c *companyRepositoryImpl) Delete(ctx context.Context, companyCode int64) error {
	sql, args, err := deleteQuery(companyCode).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := GetQuerier(ctx, c.db).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete company %d: %w", companyCode, err)
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}
