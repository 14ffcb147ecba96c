package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	officeRepo "sewakantor/database/repository/office"
	"sewakantor/models"
	"sewakantor/services/pricing"
	"sewakantor/utils"
)

// SessionStore persists booking-session state between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.BookingSession, error)
	Save(ctx context.Context, session *models.BookingSession) error
	Delete(ctx context.Context, id string) error
}

// RedisSessionStore keeps sessions in Redis under a TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func sessionCacheKey(id string) string {
	return "booking:session:" + id
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	data, err := s.Client.Get(ctx, sessionCacheKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking session: %w", err)
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionCacheKey(session.ID), data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, sessionCacheKey(id)).Err()
}

// InitiateSessionInput starts a booking flow for an office and date range.
type InitiateSessionInput struct {
	OfficeID   string `json:"office_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	RentalType string `json:"rental_type" binding:"required"`
}

// SessionDetailsInput carries the customer contact fields.
type SessionDetailsInput struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Notes         string `json:"notes"`
}

/// SessionService drives one user's booking flow through its states:
// CollectingDetails -> AwaitingPayment -> Submitting -> Confirmed | Failed.
// Failed can be retried back through Submitting by the user; no transition
// happens on a timer, and abandoned sessions simply expire out of the store.
type SessionService interface {
	Initiate(ctx context.Context, input InitiateSessionInput) (*models.BookingSession, error)
	Get(ctx context.Context, id string) (*models.BookingSession, error)
	UpdateDetails(ctx context.Context, id string, details SessionDetailsInput) (*models.BookingSession, error)
	ProceedToPayment(ctx context.Context, id string, paymentMethod string) (*models.BookingSession, error)
	Submit(ctx context.Context, id string) (*models.BookingSession, error)
	Cancel(ctx context.Context, id string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Store      SessionStore
	OfficeRepo officeRepo.OfficeRepository
	Bookings   BookingService
}

func (s *DefaultSessionService) Initiate(ctx context.Context, input InitiateSessionInput) (*models.BookingSession, error) {
	office, err := s.OfficeRepo.GetByID(input.OfficeID)
	if err != nil {
		return nil, ErrOfficeNotFound
	}
	if !office.IsAvailable() {
		return nil, ErrOfficeUnavailable
	}

	period, err := models.ParsePeriod(input.RentalType)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"rental_type": "must be one of: daily, weekly, monthly"}}
	}

	start, err := pricing.ParseDate(input.StartDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"start_date": "must be a date in YYYY-MM-DD format"}}
	}
	end, err := pricing.ParseDate(input.EndDate)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"end_date": "must be a date in YYYY-MM-DD format"}}
	}

	quote, days, err := pricing.Quote(office.Prices, period, start, end)
	if err != nil {
		if errors.Is(err, pricing.ErrTierUnavailable) {
			return nil, &TierUnavailableError{Period: period}
		}
		return nil, err
	}

	now := time.Now()
	session := &models.BookingSession{
		ID:           uuid.New().String(),
		State:        models.SessionCollectingDetails,
		OfficeID:     office.ID,
		OfficeName:   office.Name,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		RentalType:   period,
		DurationDays: days,
		Quote:        &quote,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking session initiated",
		zap.String("session_id", session.ID),
		zap.String("office_id", office.ID),
		zap.Int64("quoted_total", int64(quote.Total)))
	return session, nil
}

func (s *DefaultSessionService) Get(ctx context.Context, id string) (*models.BookingSession, error) {
	return s.Store.Get(ctx, id)
}

func (s *DefaultSessionService) UpdateDetails(ctx context.Context, id string, details SessionDetailsInput) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionCollectingDetails {
		return nil, fmt.Errorf("%w: cannot edit details in state %s", ErrInvalidTransition, session.State)
	}

	session.CustomerName = details.CustomerName
	session.CustomerEmail = details.CustomerEmail
	session.CustomerPhone = details.CustomerPhone
	session.Notes = details.Notes
	session.UpdatedAt = time.Now()

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultSessionService) ProceedToPayment(ctx context.Context, id string, paymentMethod string) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionCollectingDetails {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, session.State, models.SessionAwaitingPayment)
	}
	if session.CustomerName == "" || session.CustomerEmail == "" || session.CustomerPhone == "" {
		return nil, ErrMissingContactInfo
	}

	session.State = models.SessionAwaitingPayment
	session.PaymentMethod = paymentMethod
	session.UpdatedAt = time.Now()

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit moves the session through Submitting and creates the booking.
// Allowed from AwaitingPayment and, for manual retries, from Failed. The
// idempotency key is minted once per session and reused across retries so a
// flaky network cannot double-book.
func (s *DefaultSessionService) Submit(ctx context.Context, id string) (*models.BookingSession, error) {
	session, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.State != models.SessionAwaitingPayment && session.State != models.SessionFailed {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, session.State, models.SessionSubmitting)
	}

	if session.IdempotencyKey == "" {
		session.IdempotencyKey = uuid.New().String()
	}
	session.State = models.SessionSubmitting
	session.FailureReason = ""
	session.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}

	req := &models.BookingRequest{
		OfficeID:      session.OfficeID,
		StartDate:     session.StartDate,
		EndDate:       session.EndDate,
		RentalType:    string(session.RentalType),
		CustomerName:  session.CustomerName,
		CustomerEmail: session.CustomerEmail,
		CustomerPhone: session.CustomerPhone,
		Notes:         session.Notes,
		PaymentMethod: session.PaymentMethod,
	}

	booking, _, err := s.Bookings.CreateBooking(ctx, req, session.IdempotencyKey)
	if err != nil {
		session.State = models.SessionFailed
		session.FailureReason = err.Error()
		session.UpdatedAt = time.Now()
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			utils.GetLogger().Error("failed to record session failure", zap.Error(saveErr))
		}
		return session, nil
	}

	session.State = models.SessionConfirmed
	session.BookingID = booking.ID
	session.UpdatedAt = time.Now()
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultSessionService) Cancel(ctx context.Context, id string) error {
	if _, err := s.Store.Get(ctx, id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}
