package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewakantor/models"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"three days inclusive", "2024-01-01", "2024-01-03", 3},
		{"same day bills one day", "2024-01-01", "2024-01-01", 1},
		{"two days", "2024-01-01", "2024-01-02", 2},
		{"full week", "2024-01-01", "2024-01-07", 7},
		{"across month boundary", "2024-01-30", "2024-02-02", 4},
		{"reversed range uses absolute difference", "2024-01-03", "2024-01-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDays(date(tt.start), date(tt.end)))
		})
	}

	t.Run("zero time means incomplete selection", func(t *testing.T) {
		assert.Equal(t, 0, ResolveDays(time.Time{}, date("2024-01-01")))
		assert.Equal(t, 0, ResolveDays(date("2024-01-01"), time.Time{}))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
		end := time.Date(2024, 1, 2, 0, 15, 0, 0, time.UTC)
		assert.Equal(t, 2, ResolveDays(start, end))
	})
}

func TestBillableUnits(t *testing.T) {
	tests := []struct {
		days   int
		period models.Period
		want   int
	}{
		{1, models.PeriodDaily, 1},
		{3, models.PeriodDaily, 3},
		{30, models.PeriodDaily, 30},
		{1, models.PeriodWeekly, 1},
		{7, models.PeriodWeekly, 1},
		{8, models.PeriodWeekly, 2},
		{14, models.PeriodWeekly, 2},
		{15, models.PeriodWeekly, 3},
		{1, models.PeriodMonthly, 1},
		{30, models.PeriodMonthly, 1},
		{31, models.PeriodMonthly, 2},
		{60, models.PeriodMonthly, 2},
		{61, models.PeriodMonthly, 3},
	}
	for _, tt := range tests {
		units, err := BillableUnits(tt.days, tt.period)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, units, "%d days on %s plan", tt.days, tt.period)
	}

	t.Run("daily equals day count for any non-negative input", func(t *testing.T) {
		for days := 0; days <= 90; days++ {
			units, err := BillableUnits(days, models.PeriodDaily)
			require.NoError(t, err)
			assert.Equal(t, days, units)
		}
	})

	t.Run("unknown period fails fast", func(t *testing.T) {
		_, err := BillableUnits(5, models.Period("hourly"))
		assert.ErrorIs(t, err, ErrUnknownPeriod)
	})
}

func TestComputeBreakdown(t *testing.T) {
	t.Run("reference breakdown", func(t *testing.T) {
		b, err := ComputeBreakdown(100000, 3)
		require.NoError(t, err)
		assert.Equal(t, models.Money(300000), b.Subtotal)
		assert.Equal(t, models.Money(15000), b.ServiceFee)
		assert.Equal(t, models.Money(33000), b.Tax)
		assert.Equal(t, models.Money(348000), b.Total)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, err := ComputeBreakdown(250000, 4)
		require.NoError(t, err)
		second, err := ComputeBreakdown(250000, 4)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("total never below subtotal", func(t *testing.T) {
		for _, price := range []models.Money{1, 999, 150000, 12500000} {
			for _, units := range []int{1, 3, 12} {
				b, err := ComputeBreakdown(price, units)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, b.Total, b.Subtotal)
				assert.GreaterOrEqual(t, b.Subtotal, models.Money(0))
				assert.GreaterOrEqual(t, b.ServiceFee, models.Money(0))
				assert.GreaterOrEqual(t, b.Tax, models.Money(0))
			}
		}
	})

	t.Run("surcharges round half up", func(t *testing.T) {
		// subtotal 1010: 5% = 50.5 -> 51, 11% = 111.1 -> 111
		b, err := ComputeBreakdown(1010, 1)
		require.NoError(t, err)
		assert.Equal(t, models.Money(51), b.ServiceFee)
		assert.Equal(t, models.Money(111), b.Tax)
	})

	t.Run("missing tier price fails instead of pricing at zero", func(t *testing.T) {
		_, err := ComputeBreakdown(0, 3)
		assert.ErrorIs(t, err, ErrTierUnavailable)
	})

	t.Run("zero units is not billable", func(t *testing.T) {
		_, err := ComputeBreakdown(100000, 0)
		assert.ErrorIs(t, err, ErrNoBillableUnits)
	})
}

func TestQuote(t *testing.T) {
	prices := models.PriceTable{Daily: 100000}

	t.Run("daily three-day stay", func(t *testing.T) {
		b, days, err := Quote(prices, models.PeriodDaily, date("2024-01-01"), date("2024-01-03"))
		require.NoError(t, err)
		assert.Equal(t, 3, days)
		assert.Equal(t, 3, b.Units)
		assert.Equal(t, models.Money(348000), b.Total)
	})

	t.Run("weekly tier not quoted", func(t *testing.T) {
		_, _, err := Quote(prices, models.PeriodWeekly, date("2024-01-01"), date("2024-01-08"))
		assert.ErrorIs(t, err, ErrTierUnavailable)
	})

	t.Run("eight days on a weekly plan bills two weeks", func(t *testing.T) {
		weekly := models.PriceTable{Weekly: 500000}
		b, days, err := Quote(weekly, models.PeriodWeekly, date("2024-01-01"), date("2024-01-08"))
		require.NoError(t, err)
		assert.Equal(t, 8, days)
		assert.Equal(t, 2, b.Units)
		assert.Equal(t, models.Money(1000000), b.Subtotal)
	})
}
