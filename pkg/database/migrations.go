package database

import (
	"context"
	"database/sql"
	"fmt"
)

// searchIndexes back the case-insensitive ILIKE filters of customer search.
var searchIndexes = []struct{ name, expr string }{
	{"idx_customers_full_name_lower", "lower(full_name)"},
	{"idx_customers_email_lower", "lower(email)"},
}

// CreateSearchIndexes creates the expression indexes used by customer search.
// It is idempotent and runs on every startup after the migrations.
func CreateSearchIndexes(ctx context.Context, db *sql.DB) error {
	for _, idx := range searchIndexes {
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON customers (%s)", idx.name, idx.expr)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create search index %s: %w", idx.name, err)
		}
	}
	return nil
}
