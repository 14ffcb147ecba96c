package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	bookingRepo "sewakantor/database/repository/booking"
	officeRepo "sewakantor/database/repository/office"
	"sewakantor/models"
)

type fakeBookingRepo struct {
	byID   map[string]*models.Booking
	byKey  map[string]*models.Booking
	copies int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byID:  map[string]*models.Booking{},
		byKey: map[string]*models.Booking{},
	}
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) GetByCode(code string) (*models.Booking, error) {
	for _, b := range f.byID {
		if b.BookingCode == code {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) GetByIdempotencyKey(key string) (*models.Booking, error) {
	if b, ok := f.byKey[key]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeBookingRepo) Search(bookingRepo.BookingSearchCriteria) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range f.byID {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingRepo) Create(b *models.Booking) error {
	f.copies++
	f.byID[b.ID] = b
	if b.IdempotencyKey != "" {
		f.byKey[b.IdempotencyKey] = b
	}
	return nil
}

func (f *fakeBookingRepo) UpdateWithDocument(id string, updateDoc bson.M) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	set, _ := updateDoc["$set"].(bson.M)
	if status, ok := set["status"].(string); ok {
		b.Status = status
	}
	if ps, ok := set["payment_status"].(string); ok {
		b.PaymentStatus = ps
	}
	if m, ok := set["payment_method"].(string); ok {
		b.PaymentMethod = m
	}
	if ref, ok := set["payment_reference"].(string); ok {
		b.PaymentReference = ref
	}
	if pd, ok := set["payment_date"].(time.Time); ok {
		b.PaymentDate = &pd
	}
	return nil
}

func (f *fakeBookingRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeBookingRepo) ExpirePending(time.Time) (int64, error) { return 0, nil }

type fakeOfficeRepo struct {
	offices map[string]*models.Office
}

func (f *fakeOfficeRepo) GetByID(id string) (*models.Office, error) {
	if o, ok := f.offices[id]; ok {
		return o, nil
	}
	return nil, bookingRepo.ErrNotFound
}

func (f *fakeOfficeRepo) GetBySlug(string) (*models.Office, error) { return nil, bookingRepo.ErrNotFound }

func (f *fakeOfficeRepo) Search(officeRepo.OfficeSearchCriteria) ([]models.Office, int64, error) {
	return nil, 0, nil
}

func (f *fakeOfficeRepo) Create(*models.Office) error                { return nil }
func (f *fakeOfficeRepo) Update(*models.Office) error                { return nil }
func (f *fakeOfficeRepo) Delete(string) error                        { return nil }
func (f *fakeOfficeRepo) UpdateWithDocument(string, bson.M) error    { return nil }

func testOffice() *models.Office {
	return &models.Office{
		ID:       "office-1",
		Name:     "Menara Cakrawala 12F",
		Address:  "Jl. MH Thamrin No.9",
		CityID:   "city-jkt",
		Capacity: 8,
		Prices:   models.PriceTable{Daily: 100000},
		Status:   models.OfficeStatusAvailable,
	}
}

func validRequest() *models.BookingRequest {
	return &models.BookingRequest{
		OfficeID:      "office-1",
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-03",
		RentalType:    "daily",
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "+628123456789",
	}
}

func newService(repo *fakeBookingRepo, office *models.Office) *DefaultBookingService {
	offices := &fakeOfficeRepo{offices: map[string]*models.Office{}}
	if office != nil {
		offices.offices[office.ID] = office
	}
	return &DefaultBookingService{
		Repo:       repo,
		OfficeRepo: offices,
		Validator:  NewRequestValidator(),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("prices a three-day daily stay end to end", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newService(repo, testOffice())

		booking, created, err := svc.CreateBooking(ctx, validRequest(), "")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 3, booking.DurationDays)
		assert.Equal(t, 3, booking.Units)
		assert.Equal(t, models.Money(100000), booking.PricePerUnit)
		assert.Equal(t, models.Money(300000), booking.Subtotal)
		assert.Equal(t, models.Money(15000), booking.ServiceFee)
		assert.Equal(t, models.Money(33000), booking.Tax)
		assert.Equal(t, models.Money(348000), booking.Total)
		assert.Equal(t, models.BookingStatusPending, booking.Status)
		assert.Equal(t, models.PaymentStatusPending, booking.PaymentStatus)
		assert.Regexp(t, regexp.MustCompile(`^BK[A-Z0-9]{8}$`), booking.BookingCode)
	})

	t.Run("missing email short-circuits with a field error before persistence", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newService(repo, testOffice())

		req := validRequest()
		req.CustomerEmail = ""
		_, _, err := svc.CreateBooking(ctx, req, "")

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "customer_email")
		assert.Zero(t, repo.copies, "nothing may be persisted on validation failure")
	})

	t.Run("invalid email format is rejected", func(t *testing.T) {
		svc := newService(newFakeBookingRepo(), testOffice())
		req := validRequest()
		req.CustomerEmail = "not-an-email"
		_, _, err := svc.CreateBooking(ctx, req, "")

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "customer_email")
	})

	t.Run("end date before start date is rejected", func(t *testing.T) {
		svc := newService(newFakeBookingRepo(), testOffice())
		req := validRequest()
		req.StartDate, req.EndDate = "2024-01-05", "2024-01-01"
		_, _, err := svc.CreateBooking(ctx, req, "")

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "end_date")
	})

	t.Run("weekly tier without a quote fails as tier unavailable", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newService(repo, testOffice()) // daily price only

		req := validRequest()
		req.RentalType = "weekly"
		req.EndDate = "2024-01-08"
		_, _, err := svc.CreateBooking(ctx, req, "")

		var tierErr *TierUnavailableError
		require.ErrorAs(t, err, &tierErr)
		assert.Equal(t, models.PeriodWeekly, tierErr.Period)
		assert.Zero(t, repo.copies)
	})

	t.Run("unavailable office cannot be booked", func(t *testing.T) {
		office := testOffice()
		office.Status = models.OfficeStatusMaintenance
		svc := newService(newFakeBookingRepo(), office)

		_, _, err := svc.CreateBooking(ctx, validRequest(), "")
		assert.ErrorIs(t, err, ErrOfficeUnavailable)
	})

	t.Run("unknown office fails", func(t *testing.T) {
		svc := newService(newFakeBookingRepo(), nil)
		_, _, err := svc.CreateBooking(ctx, validRequest(), "")
		assert.ErrorIs(t, err, ErrOfficeNotFound)
	})

	t.Run("same-day booking bills one day", func(t *testing.T) {
		svc := newService(newFakeBookingRepo(), testOffice())
		req := validRequest()
		req.EndDate = req.StartDate

		booking, _, err := svc.CreateBooking(ctx, req, "")
		require.NoError(t, err)
		assert.Equal(t, 1, booking.DurationDays)
		assert.Equal(t, 1, booking.Units)
	})

	t.Run("replay with the same idempotency key returns the original booking", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := newService(repo, testOffice())

		first, created, err := svc.CreateBooking(ctx, validRequest(), "attempt-1")
		require.NoError(t, err)
		assert.True(t, created)

		second, created, err := svc.CreateBooking(ctx, validRequest(), "attempt-1")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, repo.copies, "exactly one booking persisted")
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newService(repo, testOffice())

	booking, _, err := svc.CreateBooking(ctx, validRequest(), "")
	require.NoError(t, err)

	t.Run("confirm", func(t *testing.T) {
		updated, err := svc.UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, booking.ID, "teleported")
		var vErr *ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "nope", models.BookingStatusConfirmed)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo()
	svc := newService(repo, testOffice())

	booking, _, err := svc.CreateBooking(ctx, validRequest(), "")
	require.NoError(t, err)

	updated, err := svc.UpdatePaymentStatus(ctx, booking.ID, models.PaymentStatusPaid, "credit_card", "tx-778")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, "credit_card", updated.PaymentMethod)
	assert.Equal(t, "tx-778", updated.PaymentReference)
	require.NotNil(t, updated.PaymentDate, "paid stamps the payment date")
}
