package models

import "fmt"

// Money is a monetary amount in Rupiah minor units. Integer arithmetic only;
// never store or compute prices as floats.
type Money int64

// Period is the billing granularity an office is priced at.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod validates a rental_type value from the wire.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown billing period %q", s)
}

// PriceTable maps billing periods to their quoted unit prices.
// A zero value means the tier is not offered.
type PriceTable struct {
	Daily   Money `bson:"daily,omitempty" json:"daily,omitempty"`
	Weekly  Money `bson:"weekly,omitempty" json:"weekly,omitempty"`
	Monthly Money `bson:"monthly,omitempty" json:"monthly,omitempty"`
}

// For returns the quoted price for the given period and whether the tier is offered.
func (pt PriceTable) For(p Period) (Money, bool) {
	var price Money
	switch p {
	case PeriodDaily:
		price = pt.Daily
	case PeriodWeekly:
		price = pt.Weekly
	case PeriodMonthly:
		price = pt.Monthly
	}
	return price, price > 0
}

// PriceBreakdown is the computed cost of a booking before it is persisted.
type PriceBreakdown struct {
	UnitPrice  Money `bson:"unit_price" json:"unit_price"`
	Units      int   `bson:"units" json:"units"`
	Subtotal   Money `bson:"subtotal" json:"subtotal"`
	ServiceFee Money `bson:"service_fee" json:"service_fee"`
	Tax        Money `bson:"tax" json:"tax"`
	Total      Money `bson:"total" json:"total"`
}
