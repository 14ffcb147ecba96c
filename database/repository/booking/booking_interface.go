package bookingRepo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"sewakantor/models"
)

// BookingSearchCriteria defines criteria for listing bookings.
type BookingSearchCriteria struct {
	OfficeID      string
	Status        string
	PaymentStatus string
	StartDateFrom string // "YYYY-MM-DD"
	EndDateTo     string
	Search        string // matches booking code, customer name or email
	Page          int
	PerPage       int
}

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByCode retrieves a booking by its booking code.
	GetByCode(code string) (*models.Booking, error)
	// GetByIdempotencyKey retrieves the booking created under the given key, if any.
	GetByIdempotencyKey(key string) (*models.Booking, error)
	// Search returns bookings matching the criteria plus the total match count.
	Search(criteria BookingSearchCriteria) ([]models.Booking, int64, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// UpdateWithDocument patches a booking document with the specified update document.
	UpdateWithDocument(id string, updateDoc bson.M) error
	// Delete removes a booking record by its ID.
	Delete(id string) error
	// ExpirePending marks unpaid pending bookings created before the cutoff as expired.
	ExpirePending(cutoff time.Time) (int64, error)
}
