package ib

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/cleared-dev/brokerstatement/internal/model"
)

const (
	dateFormat       = "2006-01-02"
	periodDateFormat = "January 2, 2006"
	periodSeparator  = " - "
)

func parseDate(s string) (civil.Date, error) {
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return civil.DateOf(t), nil
}

func parsePeriodDate(s string) (civil.Date, error) {
	t, err := time.Parse(periodDateFormat, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("parsing period date %q: %w", s, err)
	}
	return civil.DateOf(t), nil
}

// parsePeriod parses "October 1, 2018" or "May 21, 2018 - September 28, 2018"
// into the half-open interval ending the day after the last date.
func parsePeriod(s string) (model.Period, error) {
	dates := strings.Split(s, periodSeparator)

	switch len(dates) {
	case 1:
		date, err := parsePeriodDate(dates[0])
		if err != nil {
			return model.Period{}, err
		}
		return model.Period{Start: date, End: date.AddDays(1)}, nil

	case 2:
		start, err := parsePeriodDate(dates[0])
		if err != nil {
			return model.Period{}, err
		}
		end, err := parsePeriodDate(dates[1])
		if err != nil {
			return model.Period{}, err
		}
		if start.After(end) {
			return model.Period{}, fmt.Errorf("%w: %s - %s", ErrInvalidPeriod, start, end)
		}
		return model.Period{Start: start, End: end.AddDays(1)}, nil

	default:
		return model.Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}
