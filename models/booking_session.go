package models

import "time"

// SessionState is the stage a booking flow is in. Transitions are linear:
// CollectingDetails -> AwaitingPayment -> Submitting -> Confirmed | Failed.
// Failed may go back to Submitting on a manual retry; nothing moves on a timer.
type SessionState string

const (
	SessionCollectingDetails SessionState = "collecting_details"
	SessionAwaitingPayment   SessionState = "awaiting_payment"
	SessionSubmitting        SessionState = "submitting"
	SessionConfirmed         SessionState = "confirmed"
	SessionFailed            SessionState = "failed"
)

// BookingSession is the transient state of one user's booking flow,
// cached in Redis until it is confirmed, cancelled or expires.
type BookingSession struct {
	ID             string          `json:"id"`
	State          SessionState    `json:"state"`
	OfficeID       string          `json:"office_id"`
	OfficeName     string          `json:"office_name,omitempty"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	RentalType     Period          `json:"rental_type"`
	DurationDays   int             `json:"duration_days"`
	Quote          *PriceBreakdown `json:"quote,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	CustomerEmail  string          `json:"customer_email,omitempty"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"` // one per submission attempt, reused on retry
	BookingID      string          `json:"booking_id,omitempty"`
	FailureReason  string          `json:"failure_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
