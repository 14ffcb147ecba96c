package booking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	bookingRepo "sewakantor/database/repository/booking"
	officeRepo "sewakantor/database/repository/office"
	"sewakantor/models"
	"sewakantor/services/pricing"
	"sewakantor/utils"
)

// How long an idempotency reservation is held in Redis.
const idempotencyTTL = 24 * time.Hour

// BookingService owns the server-side booking lifecycle.
type BookingService interface {
	// CreateBooking validates, prices and persists a booking. The returned
	// bool is false when an idempotent replay returned an existing record.
	CreateBooking(ctx context.Context, req *models.BookingRequest, idempotencyKey string) (*models.Booking, bool, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*models.Booking, error)
	ListBookings(ctx context.Context, criteria bookingRepo.BookingSearchCriteria) ([]models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id string, status string) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id string, paymentStatus, method, reference string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	OfficeRepo officeRepo.OfficeRepository
	Validator  *RequestValidator
	// Cache guards idempotent creation with a SETNX reservation. Optional:
	// when nil the unique index on idempotency_key is the only guard.
	Cache *redis.Client
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req *models.BookingRequest, idempotencyKey string) (*models.Booking, bool, error) {
	logger := utils.GetLogger()

	// Local validation short-circuits before any pricing or persistence work.
	if err := s.Validator.Validate(req); err != nil {
		return nil, false, err
	}

	if idempotencyKey != "" {
		if existing, err := s.claimIdempotencyKey(ctx, idempotencyKey); err != nil {
			return nil, false, err
		} else if existing != nil {
			logger.Info("idempotent replay of booking creation",
				zap.String("idempotency_key", idempotencyKey),
				zap.String("booking_code", existing.BookingCode))
			return existing, false, nil
		}
	}

	booking, err := s.buildBooking(req, idempotencyKey)
	if err != nil {
		s.releaseIdempotencyKey(ctx, idempotencyKey)
		return nil, false, err
	}

	if err := s.Repo.Create(booking); err != nil {
		s.releaseIdempotencyKey(ctx, idempotencyKey)
		return nil, false, fmt.Errorf("failed to persist booking: %w", err)
	}

	logger.Info("booking created",
		zap.String("booking_code", booking.BookingCode),
		zap.String("office_id", booking.OfficeID),
		zap.Int64("total", int64(booking.Total)))
	return booking, true, nil
}

// buildBooking resolves the office, prices the stay and assembles the record.
func (s *DefaultBookingService) buildBooking(req *models.BookingRequest, idempotencyKey string) (*models.Booking, error) {
	office, err := s.OfficeRepo.GetByID(req.OfficeID)
	if err != nil {
		return nil, ErrOfficeNotFound
	}
	if !office.IsAvailable() {
		return nil, ErrOfficeUnavailable
	}

	period, err := models.ParsePeriod(req.RentalType)
	if err != nil {
		// rental_type is tag-validated; reaching here is a bug.
		return nil, err
	}

	start, err := pricing.ParseDate(req.StartDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"start_date": "must be a date in YYYY-MM-DD format"}}
	}
	end, err := pricing.ParseDate(req.EndDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"end_date": "must be a date in YYYY-MM-DD format"}}
	}

	breakdown, days, err := pricing.Quote(office.Prices, period, start, end)
	if err != nil {
		if errors.Is(err, pricing.ErrTierUnavailable) {
			return nil, &TierUnavailableError{Period: period}
		}
		return nil, err
	}

	now := time.Now()
	return &models.Booking{
		ID:             uuid.New().String(),
		BookingCode:    generateBookingCode(),
		OfficeID:       office.ID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DurationDays:   days,
		RentalType:     period,
		Units:          breakdown.Units,
		PricePerUnit:   breakdown.UnitPrice,
		Subtotal:       breakdown.Subtotal,
		ServiceFee:     breakdown.ServiceFee,
		Tax:            breakdown.Tax,
		Total:          breakdown.Total,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		Status:         models.BookingStatusPending,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// claimIdempotencyKey reserves the key. It returns the previously created
// booking when the key was already used, or ErrBookingInProgress when a
// concurrent attempt holds the reservation but no booking exists yet.
func (s *DefaultBookingService) claimIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	if s.Cache != nil {
		reserved, err := s.Cache.SetNX(ctx, idempotencyCacheKey(key), "reserved", idempotencyTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to reserve idempotency key: %w", err)
		}
		if reserved {
			return nil, nil
		}
	}

	existing, err := s.Repo.GetByIdempotencyKey(key)
	if err == nil {
		return existing, nil
	}
	if errors.Is(err, bookingRepo.ErrNotFound) {
		if s.Cache != nil {
			return nil, ErrBookingInProgress
		}
		return nil, nil
	}
	return nil, err
}

func (s *DefaultBookingService) releaseIdempotencyKey(ctx context.Context, key string) {
	if key == "" || s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, idempotencyCacheKey(key)).Err(); err != nil {
		utils.GetLogger().Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func idempotencyCacheKey(key string) string {
	return "booking:idem:" + key
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return booking, err
}

func (s *DefaultBookingService) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	booking, err := s.Repo.GetByCode(code)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	return booking, err
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, criteria bookingRepo.BookingSearchCriteria) ([]models.Booking, int64, error) {
	return s.Repo.Search(criteria)
}

func (s *DefaultBookingService) UpdateStatus(ctx context.Context, id string, status string) (*models.Booking, error) {
	switch status {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return nil, &ValidationError{Fields: map[string]string{"status": "must be one of: confirmed, cancelled, completed"}}
	}

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	if err := s.Repo.UpdateWithDocument(id, update); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.GetBooking(ctx, id)
}

func (s *DefaultBookingService) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus, method, reference string) (*models.Booking, error) {
	switch paymentStatus {
	case models.PaymentStatusPending, models.PaymentStatusPaid, models.PaymentStatusFailed,
		models.PaymentStatusCancelled, models.PaymentStatusRefunded:
	default:
		return nil, &ValidationError{Fields: map[string]string{"payment_status": "must be one of: pending, paid, failed, cancelled, refunded"}}
	}

	fields := bson.M{"payment_status": paymentStatus, "updated_at": time.Now()}
	if method != "" {
		fields["payment_method"] = method
	}
	if reference != "" {
		fields["payment_reference"] = reference
	}
	if paymentStatus == models.PaymentStatusPaid {
		fields["payment_date"] = time.Now()
	}

	if err := s.Repo.UpdateWithDocument(id, bson.M{"$set": fields}); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return s.GetBooking(ctx, id)
}

const bookingCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateBookingCode returns "BK" plus 8 random uppercase alphanumerics.
// The unique index on booking_code catches the rare collision.
func generateBookingCode() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken.
		panic(fmt.Sprintf("booking code generation: %v", err))
	}
	for i, b := range buf {
		buf[i] = bookingCodeCharset[int(b)%len(bookingCodeCharset)]
	}
	return "BK" + string(buf)
}
