// Package reader normalizes locally stored market data into UTC-localized,
// date-ordered return series and rate-curve tables.
package reader

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"cnmarket/internal/market/dates"
	"cnmarket/internal/market/names"
	"cnmarket/internal/market/series"
	"cnmarket/internal/market/store"
)

// Reader answers historical queries against a single store backend. Every
// call is an independent read: no state is shared across calls and nothing
// is cached, so concurrent use is safe as long as the backend supports
// concurrent reads.
type Reader struct {
	store store.Store
	names names.Resolver
	log   logrus.FieldLogger
}

// New creates a reader over a store and an index-name directory. A nil
// resolver disables name resolution; index series then keep their raw
// symbol. A nil logger falls back to the logrus standard logger.
func New(st store.Store, res names.Resolver, log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Reader{store: st, names: res, log: log}
}

// StockReturns returns the daily return fractions for a stock within
// [start, end] inclusive, labeled with the symbol itself. An unknown symbol
// yields an empty series.
func (r *Reader) StockReturns(ctx context.Context, symbol, start, end string) (series.Series, error) {
	return r.dailyReturns(ctx, store.KindStock, symbol, symbol, start, end)
}

// IndexReturns returns the daily return fractions for an index within
// [start, end] inclusive, labeled with the resolved display name. A name
// lookup miss falls back to the raw symbol and never aborts the query.
func (r *Reader) IndexReturns(ctx context.Context, symbol, start, end string) (series.Series, error) {
	return r.dailyReturns(ctx, store.KindIndex, symbol, r.displayName(ctx, symbol), start, end)
}

// TreasuryCurve returns the treasury rate fractions within [start, end]
// inclusive across the tenors the backend carries plus the synthesized ones.
// The 2-year tenor is always the mean of the 1-year and 3-year rates; the
// 7-year tenor is the mean of the 5-year and 10-year rates when the backend
// does not carry it.
func (r *Reader) TreasuryCurve(ctx context.Context, start, end string) (series.Curve, error) {
	from, to, err := dates.Sanitize(start, end)
	if err != nil {
		return series.Curve{}, err
	}

	rows, err := r.store.TreasuryRates(ctx, from, to)
	if err != nil {
		return series.Curve{}, fmt.Errorf("treasury query failed: %w", err)
	}

	curve := buildCurve(rows)
	if curve.Len() == 0 {
		return curve, nil
	}

	curve.Synthesize(series.Tenor2Year, series.Tenor1Year, series.Tenor3Year)
	if !curve.HasTenor(series.Tenor7Year) {
		curve.Synthesize(series.Tenor7Year, series.Tenor5Year, series.Tenor10Year)
	}
	return curve, nil
}

func (r *Reader) dailyReturns(ctx context.Context, kind store.Kind, symbol, name, start, end string) (series.Series, error) {
	from, to, err := dates.Sanitize(start, end)
	if err != nil {
		return series.Series{}, err
	}

	rows, err := r.store.DailyChanges(ctx, kind, symbol, from, to)
	if err != nil {
		return series.Series{}, fmt.Errorf("%s query failed for %s: %w", kind, symbol, err)
	}

	pts := make([]series.Point, 0, len(rows))
	for _, row := range rows {
		p := series.Point{Date: series.Day(row.Date)}
		// The raw source stores missing values as nulls or NaN; both
		// become a zero change.
		if row.Valid && !math.IsNaN(row.ChangePct) {
			// Raw values are percentages; returned values are fractions.
			p.Value = row.ChangePct / 100.0
		}
		pts = append(pts, p)
	}

	return series.Series{Name: name, Points: series.SortPoints(pts)}, nil
}

func (r *Reader) displayName(ctx context.Context, symbol string) string {
	if r.names == nil {
		return symbol
	}
	name, err := r.names.Resolve(ctx, symbol)
	if err != nil {
		if !errors.Is(err, names.ErrNotFound) {
			r.log.WithError(err).WithField("symbol", symbol).
				Warn("index name lookup failed, using raw symbol")
		}
		return symbol
	}
	return name
}

func buildCurve(rows []store.RateRow) series.Curve {
	var curve series.Curve
	seen := make(map[series.Tenor]bool)

	for _, row := range rows {
		out := series.CurveRow{
			Date:  series.Day(row.Date),
			Rates: make(map[series.Tenor]float64, len(row.Rates)),
		}
		for tenor, rate := range row.Rates {
			out.Rates[tenor] = rate
			if !seen[tenor] {
				seen[tenor] = true
				curve.Tenors = append(curve.Tenors, tenor)
			}
		}
		curve.Rows = append(curve.Rows, out)
	}

	series.SortTenors(curve.Tenors)
	curve.Rows = series.SortRows(curve.Rows)
	return curve
}
