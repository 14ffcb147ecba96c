// Package client is the outbound adapter for a remote booking API. It
// validates a request locally, performs exactly one POST per invocation and
// hands the backend's confirmed record back verbatim; retry policy belongs
// to the caller.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sewakantor/config"
	"sewakantor/models"
	"sewakantor/services/pricing"
)

// Matches the loose pattern the booking form enforces: something@something.tld.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidationError reports locally rejected fields. Nothing was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// BookingError is any submission failure past local validation: transport
// errors, non-success HTTP statuses and success=false payloads all collapse
// into it. The caller decides whether to retry.
type BookingError struct {
	Message string
}

func (e *BookingError) Error() string {
	return "booking submission failed: " + e.Message
}

// BookingClient submits bookings to a remote booking API.
type BookingClient struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the given API base URL.
func New(baseURL string, timeout time.Duration) *BookingClient {
	return &BookingClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NewFromConfig builds a client against the configured booking API.
func NewFromConfig() *BookingClient {
	return New(
		config.AppConfig.BookingAPIURL,
		time.Duration(config.AppConfig.BookingAPITimeoutMS)*time.Millisecond,
	)
}

// Submit validates and submits the booking under a fresh idempotency key.
// Each call is a new booking attempt; to retry the same attempt after a
// BookingError, use SubmitWithKey with the previous key.
func (c *BookingClient) Submit(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	return c.SubmitWithKey(ctx, req, uuid.New().String())
}

// SubmitWithKey submits the booking under the caller's idempotency key.
// Local validation failures short-circuit before any network traffic.
func (c *BookingClient) SubmitWithKey(ctx context.Context, req *models.BookingRequest, idempotencyKey string) (*models.Booking, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &BookingError{Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, &BookingError{Message: err.Error()}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &BookingError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BookingError{Message: err.Error()}
	}

	var envelope models.BookingAPIResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &BookingError{Message: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envelope.Success {
		msg := envelope.Message
		if msg == "" {
			msg = fmt.Sprintf("booking API returned status %d", resp.StatusCode)
		}
		return nil, &BookingError{Message: msg}
	}
	if envelope.Data == nil {
		return nil, &BookingError{Message: "booking API returned no booking record"}
	}

	// The backend is the source of truth post-submission; totals are not
	// recomputed or reconciled here.
	return envelope.Data, nil
}

// validate mirrors the booking form's required-field checks.
func validate(req *models.BookingRequest) error {
	fields := map[string]string{}

	if req.OfficeID == "" {
		fields["office_id"] = "office is required"
	}
	if req.CustomerName == "" {
		fields["customer_name"] = "name is required"
	}
	switch {
	case req.CustomerEmail == "":
		fields["customer_email"] = "email is required"
	case !emailPattern.MatchString(req.CustomerEmail):
		fields["customer_email"] = "email is invalid"
	}
	if req.CustomerPhone == "" {
		fields["customer_phone"] = "phone number is required"
	}

	if req.StartDate == "" {
		fields["start_date"] = "start date is required"
	} else if _, err := pricing.ParseDate(req.StartDate); err != nil {
		fields["start_date"] = "start date must be in YYYY-MM-DD format"
	}
	if req.EndDate == "" {
		fields["end_date"] = "end date is required"
	} else if _, err := pricing.ParseDate(req.EndDate); err != nil {
		fields["end_date"] = "end date must be in YYYY-MM-DD format"
	}

	if _, err := models.ParsePeriod(req.RentalType); err != nil {
		fields["rental_type"] = "rental type must be daily, weekly or monthly"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
