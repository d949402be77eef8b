// Package warehouse bulk-loads normalized listings into the relational
// warehouse table. Each run fully replaces the table's contents.
package warehouse

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-pipeline/internal/listing"
)

// columnTypes gives the SQL type for each non-text canonical column.
// Everything not listed is TEXT.
var columnTypes = map[string]string{
	"price":        "NUMERIC",
	"bedrooms":     "BIGINT",
	"bathrooms":    "NUMERIC",
	"square_feet":  "BIGINT",
	"year_built":   "BIGINT",
	"latitude":     "NUMERIC",
	"longitude":    "NUMERIC",
	"list_date":    "DATE",
	"pending_date": "DATE",
	"scraped_date": "DATE",
	"oh_startTime": "BIGINT",
}

// Loader writes listings to a single warehouse table via pgx.
type Loader struct {
	pool  *pgxpool.Pool
	table string
}

// NewLoader returns a Loader targeting the given table.
func NewLoader(pool *pgxpool.Pool, table string) *Loader {
	return &Loader{pool: pool, table: table}
}

// UpperColumns returns the output column set upper-cased, in fixed order.
// These are the column names both sinks expose.
func UpperColumns() []string {
	cols := make([]string, len(listing.Columns))
	for i, c := range listing.Columns {
		cols[i] = strings.ToUpper(c)
	}
	return cols
}

// EnsureSchema creates the target table if it does not exist. Column names
// are quoted upper-case to match the warehouse convention.
func (ld *Loader) EnsureSchema(ctx context.Context) error {
	defs := make([]string, len(listing.Columns))
	for i, c := range listing.Columns {
		typ, ok := columnTypes[c]
		if !ok {
			typ = "TEXT"
		}
		defs[i] = fmt.Sprintf("%q %s", strings.ToUpper(c), typ)
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %q (%s)",
		ld.table, strings.Join(defs, ", "))
	if _, err := ld.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("warehouse: ensure schema: %w", err)
	}
	return nil
}

// Load replaces the table's contents with the given listings: TRUNCATE and
// bulk COPY inside one transaction, so a failed load never leaves the
// table half-written or empty.
func (ld *Loader) Load(ctx context.Context, listings []listing.Listing) (int64, error) {
	tx, err := ld.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("warehouse: begin: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %q", ld.table)); err != nil {
		return 0, fmt.Errorf("warehouse: truncate %s: %w", ld.table, err)
	}

	rows := make([][]any, len(listings))
	for i, l := range listings {
		rows[i] = l.Values()
	}

	inserted, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{ld.table},
		UpperColumns(),
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("warehouse: copy into %s: %w", ld.table, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("warehouse: commit: %w", err)
	}
	return inserted, nil
}
