package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"sewakantor/models"
)

// ValidationError carries field-scoped messages for input the customer can fix.
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

// TierUnavailableError means the office has no price quoted for the selected
// billing period. The customer can recover by choosing another tier.
type TierUnavailableError struct {
	Period models.Period
}

func (e *TierUnavailableError) Error() string {
	return fmt.Sprintf("office has no %s price quoted", e.Period)
}

var (
	ErrOfficeNotFound    = errors.New("office not found")
	ErrOfficeUnavailable = errors.New("office is not available for booking")
	ErrBookingNotFound   = errors.New("booking not found")

	ErrSessionNotFound    = errors.New("booking session not found or expired")
	ErrInvalidTransition  = errors.New("invalid booking session transition")
	ErrBookingInProgress  = errors.New("a booking with this idempotency key is already in progress")
	ErrMissingContactInfo = errors.New("customer contact details are incomplete")
)
