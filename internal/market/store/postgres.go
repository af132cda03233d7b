package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cnmarket/internal/market/series"
)

// Relational table layout: one row per (symbol, date) for daily changes, one
// row per date for treasury yields. The yield table carries ten maturities;
// the 2-year and 7-year tenors are synthesized downstream.
var pgYieldColumns = []struct {
	column string
	tenor  series.Tenor
}{
	{"m1", series.Tenor1Month},
	{"m3", series.Tenor3Month},
	{"m6", series.Tenor6Month},
	{"y1", series.Tenor1Year},
	{"y3", series.Tenor3Year},
	{"y5", series.Tenor5Year},
	{"y10", series.Tenor10Year},
	{"y20", series.Tenor20Year},
	{"y30", series.Tenor30Year},
}

// Postgres reads market data from the relational schema in migrations/.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed store over an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// DailyChanges returns raw percent changes for a symbol within the range.
func (p *Postgres) DailyChanges(ctx context.Context, kind Kind, symbol string, start, end time.Time) ([]ChangeRow, error) {
	table, err := changeTable(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT date, change_pct
		FROM %s
		WHERE symbol = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`, table)

	rows, err := p.db.QueryContext(ctx, query, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s changes: %w", kind, err)
	}
	defer rows.Close()

	var out []ChangeRow
	for rows.Next() {
		var (
			date time.Time
			pct  sql.NullFloat64
		)
		if err := rows.Scan(&date, &pct); err != nil {
			return nil, fmt.Errorf("failed to scan change row: %w", err)
		}
		out = append(out, ChangeRow{Date: date, ChangePct: pct.Float64, Valid: pct.Valid})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating change rows: %w", err)
	}
	return out, nil
}

// TreasuryRates returns raw yield-curve rows within the range.
func (p *Postgres) TreasuryRates(ctx context.Context, start, end time.Time) ([]RateRow, error) {
	query := `
		SELECT date, m1, m3, m6, y1, y3, y5, y10, y20, y30
		FROM treasury_yields
		WHERE date BETWEEN $1 AND $2
		ORDER BY date ASC
	`

	rows, err := p.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query treasury yields: %w", err)
	}
	defer rows.Close()

	var out []RateRow
	for rows.Next() {
		var (
			date  time.Time
			rates = make([]sql.NullFloat64, len(pgYieldColumns))
			dest  = make([]interface{}, 0, len(pgYieldColumns)+1)
		)
		dest = append(dest, &date)
		for i := range rates {
			dest = append(dest, &rates[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan treasury row: %w", err)
		}

		row := RateRow{Date: date, Rates: make(map[series.Tenor]float64, len(pgYieldColumns))}
		for i, col := range pgYieldColumns {
			if rates[i].Valid {
				row.Rates[col.tenor] = rates[i].Float64
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasury rows: %w", err)
	}
	return out, nil
}

func changeTable(kind Kind) (string, error) {
	switch kind {
	case KindStock:
		return "stock_daily", nil
	case KindIndex:
		return "index_daily", nil
	default:
		return "", fmt.Errorf("unknown series kind %q", kind)
	}
}
