package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLayouts(t *testing.T) {
	want := time.Date(2017, time.September, 4, 0, 0, 0, 0, time.UTC)

	for _, input := range []string{
		"2017-09-04",
		"2017-9-4",
		"2017/09/04",
		"2017/9/4",
		"20170904",
	} {
		t.Run(input, func(t *testing.T) {
			from, to, err := Sanitize(input, "2017-09-08")
			require.NoError(t, err)
			assert.Equal(t, want, from)
			assert.Equal(t, time.Date(2017, time.September, 8, 0, 0, 0, 0, time.UTC), to)
			assert.Equal(t, time.UTC, from.Location())
			assert.Equal(t, time.UTC, to.Location())
		})
	}
}

func TestSanitizeDefaults(t *testing.T) {
	from, to, err := Sanitize("", "")
	require.NoError(t, err)

	assert.Equal(t, Earliest, from)
	assert.False(t, to.Before(from))
	assert.Equal(t, 0, to.Hour())
	assert.Equal(t, time.UTC, to.Location())
}

func TestSanitizeRejectsReversedRange(t *testing.T) {
	_, _, err := Sanitize("2020-05-25", "2020-05-15")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSanitizeRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"not-a-date", "2020-13-40", "05/15/2020"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := Sanitize(input, "2020-05-25")
			assert.Error(t, err)
		})
	}
}

func TestSanitizeDeterministic(t *testing.T) {
	from1, to1, err := Sanitize("2020-05-15", "2020-05-25")
	require.NoError(t, err)
	from2, to2, err := Sanitize("2020-05-15", "2020-05-25")
	require.NoError(t, err)

	assert.Equal(t, from1, from2)
	assert.Equal(t, to1, to2)
}
