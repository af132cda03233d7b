// Package store abstracts range queries over the locally persisted market
// data. One capability, interchangeable backends: a relational database, a
// document store, or a directory of CSV files.
package store

import (
	"context"
	"time"

	"cnmarket/internal/market/series"
)

// Kind selects which daily-change dataset a query targets.
type Kind string

const (
	KindStock Kind = "stock"
	KindIndex Kind = "index"
)

// ChangeRow is one raw daily percent-change observation. Valid is false when
// the source held no value for the day; the reader coerces those to zero.
type ChangeRow struct {
	Date      time.Time
	ChangePct float64
	Valid     bool
}

// RateRow is one raw treasury curve observation. Rates holds fractions keyed
// by canonical tenor; tenors absent from the backend are absent from the map.
type RateRow struct {
	Date  time.Time
	Rates map[series.Tenor]float64
}

// Store is a read-only range query over keyed daily time series. Both
// methods return rows filtered to [start, end] inclusive and sorted
// ascending by date. An unknown symbol yields an empty result, not an error.
type Store interface {
	DailyChanges(ctx context.Context, kind Kind, symbol string, start, end time.Time) ([]ChangeRow, error)
	TreasuryRates(ctx context.Context, start, end time.Time) ([]RateRow, error)
}
