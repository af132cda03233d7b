package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cnmarket/internal/market/series"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "stock/000333.csv", `date,change_pct
2020-05-15,-1.8103
2020-05-18,0.9482
2020-05-19,
2020-05-20,0.4595
`)
	writeFixture(t, dir, "index/000300.csv", `date,change_pct
2020-05-15,-0.3160
2020-05-18,0.2580
`)
	writeFixture(t, dir, "treasury.csv", `date,m1,m3,m6,y1,y3,y5,y10,y20,y30
2017-09-04,0.028337,0.029352,0.033742,0.033959,0.035816,0.036235,0.036454,0.041561,0.042308
2017-09-05,0.028273,0.029284,0.033743,0.034214,0.035843,0.036403,0.036641,0.041661,0.042409
`)
	return dir
}

func utcDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCSVDirDailyChanges(t *testing.T) {
	st := NewCSVDir(fixtureDir(t))
	ctx := context.Background()

	rows, err := st.DailyChanges(ctx, KindStock, "000333", utcDay(2020, time.May, 15), utcDay(2020, time.May, 19))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, utcDay(2020, time.May, 15), rows[0].Date)
	assert.Equal(t, -1.8103, rows[0].ChangePct)
	assert.True(t, rows[0].Valid)

	// Empty cell means no raw value for the day.
	assert.Equal(t, utcDay(2020, time.May, 19), rows[2].Date)
	assert.False(t, rows[2].Valid)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Date.Before(rows[i].Date))
	}
}

func TestCSVDirRangeIsInclusive(t *testing.T) {
	st := NewCSVDir(fixtureDir(t))

	rows, err := st.DailyChanges(context.Background(), KindIndex, "000300",
		utcDay(2020, time.May, 18), utcDay(2020, time.May, 18))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.2580, rows[0].ChangePct)
}

func TestCSVDirUnknownSymbol(t *testing.T) {
	st := NewCSVDir(fixtureDir(t))

	rows, err := st.DailyChanges(context.Background(), KindStock, "999999",
		utcDay(2020, time.May, 15), utcDay(2020, time.May, 25))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVDirUnknownKind(t *testing.T) {
	st := NewCSVDir(fixtureDir(t))

	_, err := st.DailyChanges(context.Background(), Kind("bond"), "000333",
		utcDay(2020, time.May, 15), utcDay(2020, time.May, 25))
	assert.Error(t, err)
}

func TestCSVDirTreasuryRates(t *testing.T) {
	st := NewCSVDir(fixtureDir(t))

	rows, err := st.TreasuryRates(context.Background(),
		utcDay(2017, time.September, 4), utcDay(2017, time.September, 8))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, utcDay(2017, time.September, 4), first.Date)
	assert.Equal(t, 0.033959, first.Rates[series.Tenor1Year])
	assert.Equal(t, 0.035816, first.Rates[series.Tenor3Year])
	assert.Len(t, first.Rates, 9)

	_, has2y := first.Rates[series.Tenor2Year]
	assert.False(t, has2y, "raw source must not carry a 2-year tenor")
}

func TestCSVDirTreasuryMissingFile(t *testing.T) {
	st := NewCSVDir(t.TempDir())

	rows, err := st.TreasuryRates(context.Background(),
		utcDay(2017, time.September, 4), utcDay(2017, time.September, 8))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVDirMalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "stock/000001.csv", `date,change_pct
15 May 2020,-1.81
`)
	st := NewCSVDir(dir)

	_, err := st.DailyChanges(context.Background(), KindStock, "000001",
		utcDay(2020, time.May, 15), utcDay(2020, time.May, 25))
	assert.Error(t, err)
}
