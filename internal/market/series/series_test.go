package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	// 2020-05-16 02:00 in Shanghai is still 2020-05-15 in UTC.
	got := Day(time.Date(2020, time.May, 16, 2, 0, 0, 0, shanghai))
	assert.Equal(t, day(2020, time.May, 15), got)

	got = Day(time.Date(2020, time.May, 15, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, day(2020, time.May, 15), got)
}

func TestSortPointsOrdersAndDeduplicates(t *testing.T) {
	pts := []Point{
		{Date: day(2020, time.May, 19), Value: 0.3},
		{Date: day(2020, time.May, 15), Value: 0.1},
		{Date: day(2020, time.May, 18), Value: 0.2},
		{Date: day(2020, time.May, 15), Value: 0.9},
	}

	got := SortPoints(pts)

	require.Len(t, got, 3)
	assert.Equal(t, day(2020, time.May, 15), got[0].Date)
	// The later observation wins for a repeated day.
	assert.Equal(t, 0.9, got[0].Value)
	assert.Equal(t, day(2020, time.May, 18), got[1].Date)
	assert.Equal(t, day(2020, time.May, 19), got[2].Date)

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Date.Before(got[i].Date), "dates must be strictly ascending")
	}
}

func TestTenorForCode(t *testing.T) {
	cases := map[string]Tenor{
		"m0":  TenorCash,
		"m1":  Tenor1Month,
		"y1":  Tenor1Year,
		"y7":  Tenor7Year,
		"y50": Tenor50Year,
	}
	for code, want := range cases {
		got, ok := TenorForCode(code)
		require.True(t, ok, code)
		assert.Equal(t, want, got)
	}

	_, ok := TenorForCode("y99")
	assert.False(t, ok)
}

func TestSortTenors(t *testing.T) {
	tenors := []Tenor{Tenor30Year, TenorCash, Tenor2Year, Tenor1Year, Tenor3Month}
	SortTenors(tenors)
	assert.Equal(t, []Tenor{TenorCash, Tenor3Month, Tenor1Year, Tenor2Year, Tenor30Year}, tenors)
}

func TestSynthesize(t *testing.T) {
	curve := Curve{
		Tenors: []Tenor{Tenor1Year, Tenor3Year},
		Rows: []CurveRow{
			{Date: day(2017, time.September, 4), Rates: map[Tenor]float64{
				Tenor1Year: 0.033959,
				Tenor3Year: 0.035816,
			}},
			{Date: day(2017, time.September, 5), Rates: map[Tenor]float64{
				Tenor1Year: 0.034214,
				Tenor3Year: 0.035843,
			}},
		},
	}

	curve.Synthesize(Tenor2Year, Tenor1Year, Tenor3Year)

	assert.Equal(t, []Tenor{Tenor1Year, Tenor2Year, Tenor3Year}, curve.Tenors)
	// Expected values must come from the same float64 arithmetic the
	// synthesis performs, not from constant expressions.
	for _, row := range curve.Rows {
		assert.Equal(t, (row.Rates[Tenor1Year]+row.Rates[Tenor3Year])/2, row.Rates[Tenor2Year])
	}
	assert.InDelta(t, 0.0348875, curve.Rows[0].Rates[Tenor2Year], 1e-12)
}

func TestSynthesizeSkipsRowsMissingBrackets(t *testing.T) {
	curve := Curve{
		Tenors: []Tenor{Tenor1Year},
		Rows: []CurveRow{
			{Date: day(2017, time.September, 4), Rates: map[Tenor]float64{
				Tenor1Year: 0.033959,
			}},
		},
	}

	curve.Synthesize(Tenor2Year, Tenor1Year, Tenor3Year)

	_, ok := curve.Rows[0].Rates[Tenor2Year]
	assert.False(t, ok, "row without both brackets must stay untouched")
	assert.True(t, curve.HasTenor(Tenor2Year))
}
