package series

import (
	"sort"
	"time"
)

// Point is a single daily observation: a calendar day and a signed fraction.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a named, date-ordered sequence of daily return fractions.
// Dates are UTC midnight timestamps, strictly ascending and deduplicated.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Len returns the number of observations.
func (s Series) Len() int { return len(s.Points) }

// CurveRow is one day of the rate term structure, keyed by canonical tenor.
type CurveRow struct {
	Date  time.Time         `json:"date"`
	Rates map[Tenor]float64 `json:"rates"`
}

// Curve is a date-ordered table of rate fractions across a fixed tenor set.
// An empty curve carries no tenors; callers must tolerate that.
type Curve struct {
	Tenors []Tenor    `json:"tenors"`
	Rows   []CurveRow `json:"rows"`
}

// Len returns the number of rows.
func (c Curve) Len() int { return len(c.Rows) }

// Day normalizes a timestamp to UTC midnight of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SortPoints orders points ascending by date and drops repeated days,
// keeping the last observation for each day.
func SortPoints(pts []Point) []Point {
	sort.SliceStable(pts, func(i, j int) bool {
		return pts[i].Date.Before(pts[j].Date)
	})
	out := pts[:0]
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortRows orders curve rows ascending by date and drops repeated days,
// keeping the last row for each day.
func SortRows(rows []CurveRow) []CurveRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	out := rows[:0]
	for _, r := range rows {
		if n := len(out); n > 0 && out[n-1].Date.Equal(r.Date) {
			out[n-1] = r
			continue
		}
		out = append(out, r)
	}
	return out
}

// Synthesize fills tenor t on every row of the curve as the unweighted mean
// of the lo and hi tenors, overwriting any raw value, and inserts t into the
// curve's tenor list at its term-structure position. Rows missing either
// bracketing tenor are left untouched.
func (c *Curve) Synthesize(t, lo, hi Tenor) {
	for _, row := range c.Rows {
		l, okLo := row.Rates[lo]
		h, okHi := row.Rates[hi]
		if !okLo || !okHi {
			continue
		}
		row.Rates[t] = (l + h) / 2
	}
	c.addTenor(t)
}

// HasTenor reports whether the curve's tenor list contains t.
func (c *Curve) HasTenor(t Tenor) bool {
	for _, have := range c.Tenors {
		if have == t {
			return true
		}
	}
	return false
}

func (c *Curve) addTenor(t Tenor) {
	if c.HasTenor(t) {
		return
	}
	c.Tenors = append(c.Tenors, t)
	SortTenors(c.Tenors)
}
