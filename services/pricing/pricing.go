// Package pricing holds the pure booking-cost arithmetic: date-range
// resolution, billing-unit rounding and the fee/tax breakdown. No I/O,
// no shared state; every page of the product quotes through here.
package pricing

import (
	"errors"
	"fmt"
	"time"

	"sewakantor/models"
)

// Surcharge percentages applied on top of the subtotal.
const (
	ServiceFeePercent = 5
	TaxPercent        = 11 // PPN
)

// Days per billing unit.
const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

var (
	// ErrUnknownPeriod means an invalid billing period reached the calculator.
	// That is a programmer error, not user input; callers must not swallow it.
	ErrUnknownPeriod = errors.New("unknown billing period")

	// ErrTierUnavailable means the office has no price quoted for the
	// selected period. Recoverable: the customer can pick another tier.
	ErrTierUnavailable = errors.New("no price quoted for the selected period")

	// ErrNoBillableUnits means the date selection resolved to nothing billable.
	ErrNoBillableUnits = errors.New("no billable units")
)

// ResolveDays converts a date range into a whole number of billable days.
// Both endpoints are billable: Jan 1 to Jan 3 is 3 days, and a same-day
// booking is 1 day, never 0. A zero time on either side returns 0, which
// callers must treat as an incomplete selection. Time-of-day is ignored.
func ResolveDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	s := truncateToDate(start)
	e := truncateToDate(end)
	if e.Before(s) {
		s, e = e, s
	}
	nights := int(e.Sub(s) / (24 * time.Hour))
	return nights + 1
}

// BillableUnits rounds a day count up to whole billing units. Partial weeks
// and months bill as a full unit: 8 days on a weekly plan is 2 weeks.
func BillableUnits(days int, period models.Period) (int, error) {
	switch period {
	case models.PeriodDaily:
		return days, nil
	case models.PeriodWeekly:
		return ceilDiv(days, daysPerWeek), nil
	case models.PeriodMonthly:
		return ceilDiv(days, daysPerMonth), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
}

// ComputeBreakdown prices units at the quoted per-unit price and applies the
// service fee and tax surcharges. The unit price must be the quote for the
// selected tier itself; a daily price is never scaled into a weekly estimate.
// A missing or zero quote fails with ErrTierUnavailable rather than silently
// pricing the booking at zero.
func ComputeBreakdown(unitPrice models.Money, units int) (models.PriceBreakdown, error) {
	if unitPrice <= 0 {
		return models.PriceBreakdown{}, ErrTierUnavailable
	}
	if units <= 0 {
		return models.PriceBreakdown{}, ErrNoBillableUnits
	}

	subtotal := unitPrice * models.Money(units)
	serviceFee := percentOf(subtotal, ServiceFeePercent)
	tax := percentOf(subtotal, TaxPercent)

	return models.PriceBreakdown{
		UnitPrice:  unitPrice,
		Units:      units,
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Tax:        tax,
		Total:      subtotal + serviceFee + tax,
	}, nil
}

// Quote resolves a full breakdown for an office price table and date range.
func Quote(prices models.PriceTable, period models.Period, start, end time.Time) (models.PriceBreakdown, int, error) {
	days := ResolveDays(start, end)
	units, err := BillableUnits(days, period)
	if err != nil {
		return models.PriceBreakdown{}, 0, err
	}
	unitPrice, ok := prices.For(period)
	if !ok {
		return models.PriceBreakdown{}, days, ErrTierUnavailable
	}
	breakdown, err := ComputeBreakdown(unitPrice, units)
	if err != nil {
		return models.PriceBreakdown{}, days, err
	}
	return breakdown, days, nil
}

// ParseDate parses a wire date in "YYYY-MM-DD" form.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// percentOf computes pct% of amount in minor units, rounding half up.
func percentOf(amount models.Money, pct int64) models.Money {
	return (amount*models.Money(pct) + 50) / 100
}
