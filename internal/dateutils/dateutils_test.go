package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUSDate(t *testing.T) {
	date, err := ParseUSDate("01/15/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), date)

	date, err = ParseUSDate("  12/31/2025 ")
	require.NoError(t, err)
	assert.Equal(t, 2025, date.Year())
}

func TestParseUSDateInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "2026-01-15", "13/45/2026", "01-15-2026"} {
		t.Run("input="+input, func(t *testing.T) {
			_, err := ParseUSDate(input)
			assert.Error(t, err)
		})
	}
}

func TestParseFlexibleDate(t *testing.T) {
	iso, err := ParseFlexibleDate("2026-01-15")
	require.NoError(t, err)

	us, err := ParseFlexibleDate("01/15/2026")
	require.NoError(t, err)

	assert.True(t, iso.Equal(us))
}

func TestParseFlexibleDateInvalid(t *testing.T) {
	for _, input := range []string{"", "15.01.2026", "January 15, 2026"} {
		_, err := ParseFlexibleDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestMonthKey(t *testing.T) {
	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", MonthKey(date))
}

func TestToISODate(t *testing.T) {
	date := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-07", ToISODate(date))
}
