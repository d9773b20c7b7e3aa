package ib

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2018-06-22")
	require.NoError(t, err)
	assert.Equal(t, day(2018, 6, 22), d)

	_, err = parseDate("June 22, 2018")
	assert.ErrorContains(t, err, "parsing date")
	_, err = parseDate("2018-13-01")
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		period string
		want   model.Period
	}{
		{"October 1, 2018", model.Period{Start: day(2018, 10, 1), End: day(2018, 10, 2)}},
		{"September 30, 2018", model.Period{Start: day(2018, 9, 30), End: day(2018, 10, 1)}},
		{"December 31, 2018", model.Period{Start: day(2018, 12, 31), End: day(2019, 1, 1)}},
		{"May 21, 2018 - September 28, 2018", model.Period{Start: day(2018, 5, 21), End: day(2018, 9, 29)}},
		{"May 21, 2018 - May 21, 2018", model.Period{Start: day(2018, 5, 21), End: day(2018, 5, 22)}},
	}
	for _, tt := range tests {
		got, err := parsePeriod(tt.period)
		require.NoError(t, err, tt.period)
		assert.Equal(t, tt.want, got, tt.period)
	}
}

func TestParsePeriod_Errors(t *testing.T) {
	_, err := parsePeriod("September 28, 2018 - May 21, 2018")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = parsePeriod("May 1, 2018 - May 2, 2018 - May 3, 2018")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = parsePeriod("2018-05-21")
	assert.ErrorContains(t, err, "parsing period date")

	_, err = parsePeriod("May 21, 2018 - tomorrow")
	assert.Error(t, err)
}
