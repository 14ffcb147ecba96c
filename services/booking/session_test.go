package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sewakantor/models"
)

type memSessionStore struct {
	sessions map[string]*models.BookingSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*models.BookingSession{}}
}

func (m *memSessionStore) Get(_ context.Context, id string) (*models.BookingSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessionStore) Save(_ context.Context, session *models.BookingSession) error {
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func newSessionService(office *models.Office) (*DefaultSessionService, *fakeBookingRepo) {
	repo := newFakeBookingRepo()
	bookings := newService(repo, office)
	return &DefaultSessionService{
		Store:      newMemSessionStore(),
		OfficeRepo: bookings.OfficeRepo,
		Bookings:   bookings,
	}, repo
}

func initiated(t *testing.T, svc *DefaultSessionService) *models.BookingSession {
	t.Helper()
	session, err := svc.Initiate(context.Background(), InitiateSessionInput{
		OfficeID:   "office-1",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-03",
		RentalType: "daily",
	})
	require.NoError(t, err)
	return session
}

func withDetails(t *testing.T, svc *DefaultSessionService) *models.BookingSession {
	t.Helper()
	session := initiated(t, svc)
	session, err := svc.UpdateDetails(context.Background(), session.ID, SessionDetailsInput{
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "+628123456789",
	})
	require.NoError(t, err)
	return session
}

func TestSessionInitiate(t *testing.T) {
	ctx := context.Background()

	t.Run("quotes the stay up front", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		session := initiated(t, svc)

		assert.Equal(t, models.SessionCollectingDetails, session.State)
		assert.Equal(t, 3, session.DurationDays)
		require.NotNil(t, session.Quote)
		assert.Equal(t, models.Money(348000), session.Quote.Total)
	})

	t.Run("tier without a quote is rejected at initiation", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		_, err := svc.Initiate(ctx, InitiateSessionInput{
			OfficeID:   "office-1",
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-08",
			RentalType: "weekly",
		})
		var tierErr *TierUnavailableError
		assert.ErrorAs(t, err, &tierErr)
	})

	t.Run("unavailable office is rejected", func(t *testing.T) {
		office := testOffice()
		office.Status = models.OfficeStatusUnavailable
		svc, _ := newSessionService(office)
		_, err := svc.Initiate(ctx, InitiateSessionInput{
			OfficeID:   "office-1",
			StartDate:  "2024-01-01",
			EndDate:    "2024-01-03",
			RentalType: "daily",
		})
		assert.ErrorIs(t, err, ErrOfficeUnavailable)
	})
}

func TestSessionFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path to confirmed", func(t *testing.T) {
		svc, repo := newSessionService(testOffice())
		session := withDetails(t, svc)

		session, err := svc.ProceedToPayment(ctx, session.ID, "credit_card")
		require.NoError(t, err)
		assert.Equal(t, models.SessionAwaitingPayment, session.State)

		session, err = svc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SessionConfirmed, session.State)
		assert.NotEmpty(t, session.BookingID)
		assert.Equal(t, 1, repo.copies)
	})

	t.Run("cannot pay without contact details", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		session := initiated(t, svc)

		_, err := svc.ProceedToPayment(ctx, session.ID, "credit_card")
		assert.ErrorIs(t, err, ErrMissingContactInfo)
	})

	t.Run("cannot submit while collecting details", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		session := initiated(t, svc)

		_, err := svc.Submit(ctx, session.ID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cannot edit details after moving to payment", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		session := withDetails(t, svc)
		_, err := svc.ProceedToPayment(ctx, session.ID, "credit_card")
		require.NoError(t, err)

		_, err = svc.UpdateDetails(ctx, session.ID, SessionDetailsInput{CustomerName: "X"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("failed submission can be retried and keeps its idempotency key", func(t *testing.T) {
		// Office disappears between quoting and submitting.
		office := testOffice()
		svc, repo := newSessionService(office)
		session := withDetails(t, svc)
		_, err := svc.ProceedToPayment(ctx, session.ID, "credit_card")
		require.NoError(t, err)

		offices := svc.OfficeRepo.(*fakeOfficeRepo)
		delete(offices.offices, office.ID)

		session, err = svc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SessionFailed, session.State)
		assert.NotEmpty(t, session.FailureReason)
		assert.Empty(t, session.BookingID, "failed submission books nothing")
		firstKey := session.IdempotencyKey
		assert.NotEmpty(t, firstKey)

		offices.offices[office.ID] = office
		session, err = svc.Submit(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, models.SessionConfirmed, session.State)
		assert.Equal(t, firstKey, session.IdempotencyKey)
		assert.Equal(t, 1, repo.copies)
	})

	t.Run("cancel removes the session", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		session := initiated(t, svc)

		require.NoError(t, svc.Cancel(ctx, session.ID))
		_, err := svc.Get(ctx, session.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session is gone", func(t *testing.T) {
		svc, _ := newSessionService(testOffice())
		_, err := svc.Get(ctx, "no-such-session")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
