package farebox

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios. Every operation rejects
// with one of these before touching state; a wrapped sentinel always
// survives errors.Is.
var (
	// General errors
	ErrNotFound      = errors.New("farebox: not found")
	ErrAlreadyExists = errors.New("farebox: already exists")
	ErrInvalidInput  = errors.New("farebox: invalid input")
	ErrUnauthorized  = errors.New("farebox: unauthorized")

	// Configuration errors
	ErrAlreadyInitialized = errors.New("farebox: fare config already initialized")
	ErrConfigNotFound     = errors.New("farebox: fare config not found")
	ErrInvalidFare        = errors.New("farebox: invalid fare amount")

	// Ticket errors
	ErrTicketNotFound       = errors.New("farebox: ticket not found")
	ErrInvalidTransportMode = errors.New("farebox: invalid transport mode")
	ErrInvalidTicketState   = errors.New("farebox: invalid ticket state")
	ErrDuplicateTicketID    = errors.New("farebox: duplicate ticket id")
	ErrInsufficientFare     = errors.New("farebox: insufficient fare")

	// Subscription errors
	ErrInvalidSubscriptionType   = errors.New("farebox: invalid subscription type")
	ErrSubscriptionAlreadyActive = errors.New("farebox: subscription already active")
	ErrNoActiveSubscription      = errors.New("farebox: no active subscription")
	ErrSubscriptionExpired       = errors.New("farebox: subscription expired")

	// Payment errors
	ErrPaymentNotFound    = errors.New("farebox: payment not found")
	ErrDuplicatePaymentID = errors.New("farebox: duplicate payment id")

	// Passenger errors
	ErrPassengerNotFound = errors.New("farebox: passenger not found")

	// Counter errors
	ErrCounterUnderflow = errors.New("farebox: counter underflow")

	// Settlement errors
	ErrTransfer          = errors.New("farebox: transfer failed")
	ErrInsufficientFunds = errors.New("farebox: insufficient funds")

	// Store errors
	ErrStoreNotReady   = errors.New("farebox: store not ready")
	ErrStoreClosed     = errors.New("farebox: store is closed")
	ErrMigrationFailed = errors.New("farebox: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("farebox: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error means a requested record does not
// exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConfigNotFound) ||
		errors.Is(err, ErrTicketNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrPassengerNotFound)
}

// IsStateConflict returns true if the error means the operation is valid in
// general but not in the record's current state. Conflicts are not
// retryable as-is; the caller must observe the new state first.
func IsStateConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrAlreadyInitialized) ||
		errors.Is(err, ErrDuplicateTicketID) ||
		errors.Is(err, ErrDuplicatePaymentID) ||
		errors.Is(err, ErrInvalidTicketState) ||
		errors.Is(err, ErrSubscriptionAlreadyActive) ||
		errors.Is(err, ErrNoActiveSubscription) ||
		errors.Is(err, ErrSubscriptionExpired) ||
		errors.Is(err, ErrCounterUnderflow)
}

// IsValidation returns true if the error means the input itself was
// malformed, regardless of current state.
func IsValidation(err error) bool {
	if errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidFare) ||
		errors.Is(err, ErrInvalidTransportMode) ||
		errors.Is(err, ErrInvalidSubscriptionType) ||
		errors.Is(err, ErrInsufficientFare) {
		return true
	}

	var ve ValidationError

	return errors.As(err, &ve)
}

// IsRetryable returns true if the error is temporary and the operation can
// be retried without any state change.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransfer)
}
