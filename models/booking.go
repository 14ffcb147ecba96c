package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
	BookingStatusExpired   = "expired"
)

// Payment status values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// Booking represents a confirmed booking record.
type Booking struct {
	ID               string     `bson:"id" json:"id"`
	BookingCode      string     `bson:"booking_code" json:"booking_code"`
	OfficeID         string     `bson:"office_id" json:"office_id"`
	StartDate        string     `bson:"start_date" json:"start_date"` // "YYYY-MM-DD", both endpoints billable
	EndDate          string     `bson:"end_date" json:"end_date"`
	DurationDays     int        `bson:"duration_days" json:"duration_days"`
	RentalType       Period     `bson:"rental_type" json:"rental_type"`
	Units            int        `bson:"units" json:"units"`
	PricePerUnit     Money      `bson:"price_per_unit" json:"price_per_unit"`
	Subtotal         Money      `bson:"subtotal" json:"subtotal"`
	ServiceFee       Money      `bson:"service_fee" json:"service_fee"`
	Tax              Money      `bson:"tax" json:"tax"`
	Total            Money      `bson:"total" json:"total"`
	CustomerName     string     `bson:"customer_name" json:"customer_name"`
	CustomerEmail    string     `bson:"customer_email" json:"customer_email"`
	CustomerPhone    string     `bson:"customer_phone" json:"customer_phone"`
	Notes            string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Status           string     `bson:"status" json:"status"`
	PaymentStatus    string     `bson:"payment_status" json:"payment_status"`
	PaymentMethod    string     `bson:"payment_method,omitempty" json:"payment_method,omitempty"`
	PaymentReference string     `bson:"payment_reference,omitempty" json:"payment_reference,omitempty"`
	PaymentDate      *time.Time `bson:"payment_date,omitempty" json:"payment_date,omitempty"`
	IdempotencyKey   string     `bson:"idempotency_key,omitempty" json:"-"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// BookingRequest is the payload accepted when creating a booking.
type BookingRequest struct {
	OfficeID      string `json:"office_id" validate:"required"`
	StartDate     string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string `json:"end_date" validate:"required,datetime=2006-01-02"`
	RentalType    string `json:"rental_type" validate:"required,oneof=daily weekly monthly"`
	CustomerName  string `json:"customer_name" validate:"required,max=255"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=20"`
	Notes         string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PaymentMethod string `json:"payment_method,omitempty"`
	ComputedTotal Money  `json:"computed_total,omitempty"` // client-side quote, informational only
}

// BookingAPIResponse is the wire envelope for booking endpoints. Shared by
// the server handlers and the outbound submission client.
type BookingAPIResponse struct {
	Success bool     `json:"success"`
	Data    *Booking `json:"data,omitempty"`
	Message string   `json:"message,omitempty"`
}
