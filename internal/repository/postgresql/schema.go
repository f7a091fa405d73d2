package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/estock-market/company-service/internal/pkg/database"
)

//go:embed schema/companies.sql
var companiesSchema string

// EnsureSchema creates the companies table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, companiesSchema); err != nil {
		return fmt.Errorf("apply companies schema: %w", err)
	}
	return nil
}
