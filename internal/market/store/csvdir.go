package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"cnmarket/internal/market/series"
)

// CSVDir reads market data from a directory of CSV files. Daily changes live
// under <dir>/stock/<symbol>.csv and <dir>/index/<symbol>.csv with a
// "date,change_pct" header; treasury yields live in <dir>/treasury.csv with a
// "date,<maturity codes...>" header. Used for fixtures and offline runs.
type CSVDir struct {
	dir string
}

// NewCSVDir creates a file-backed store rooted at dir.
func NewCSVDir(dir string) *CSVDir {
	return &CSVDir{dir: dir}
}

// DailyChanges returns raw percent changes for a symbol within the range.
// A missing symbol file yields an empty result.
func (c *CSVDir) DailyChanges(ctx context.Context, kind Kind, symbol string, start, end time.Time) ([]ChangeRow, error) {
	if kind != KindStock && kind != KindIndex {
		return nil, fmt.Errorf("unknown series kind %q", kind)
	}

	records, err := c.readFile(filepath.Join(c.dir, string(kind), symbol+".csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	var out []ChangeRow
	for i, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("%s/%s row %d: expected 2 fields, got %d", kind, symbol, i+2, len(record))
		}
		date, err := parseCSVDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("%s/%s row %d: %w", kind, symbol, i+2, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}

		row := ChangeRow{Date: date}
		if record[1] != "" {
			pct, err := strconv.ParseFloat(record[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%s/%s row %d: invalid change_pct: %w", kind, symbol, i+2, err)
			}
			row.ChangePct = pct
			row.Valid = true
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// TreasuryRates returns raw yield-curve rows within the range. Header cells
// after the date column must be maturity codes; unknown codes are skipped.
func (c *CSVDir) TreasuryRates(ctx context.Context, start, end time.Time) ([]RateRow, error) {
	records, err := c.readFile(filepath.Join(c.dir, "treasury.csv"))
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}

	header := records[0]
	tenors := make([]series.Tenor, len(header))
	for i, code := range header[1:] {
		if t, ok := series.TenorForCode(code); ok {
			tenors[i+1] = t
		}
	}

	var out []RateRow
	for i, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("treasury row %d: expected %d fields, got %d", i+2, len(header), len(record))
		}
		date, err := parseCSVDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("treasury row %d: %w", i+2, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}

		row := RateRow{Date: date, Rates: make(map[series.Tenor]float64)}
		for j := 1; j < len(record); j++ {
			if tenors[j] == "" || record[j] == "" {
				continue
			}
			rate, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("treasury row %d, column %s: %w", i+2, header[j], err)
			}
			row.Rates[tenors[j]] = rate
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (c *CSVDir) readFile(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return records, nil
}

func parseCSVDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}
