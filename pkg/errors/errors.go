package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidTerms               = errors.New("invalid contract terms")
	ErrMissingRejectionReason     = errors.New("rejection reason is required")
	ErrInvalidTransition          = errors.New("invalid status transition")
	ErrDocumentNotFound           = errors.New("document not found")
	ErrContractNotFound           = errors.New("contract not found")
	ErrNotificationDeliveryFailed = errors.New("notification delivery failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeInvalidTerms               = "INVALID_TERMS"
	ErrCodeMissingRejectionReason     = "MISSING_REJECTION_REASON"
	ErrCodeInvalidTransition          = "INVALID_TRANSITION"
	ErrCodeNotFound                   = "NOT_FOUND"
	ErrCodeNotificationDeliveryFailed = "NOTIFICATION_DELIVERY_FAILED"
	ErrCodeDatabaseError              = "DATABASE_ERROR"
	ErrCodeCacheError                 = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapInvalidTerms(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTerms,
		fmt.Sprintf("Invalid contract terms: %s", reason),
		ErrInvalidTerms,
	)
}

func WrapMissingRejectionReason(documentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeMissingRejectionReason,
		fmt.Sprintf("Document %s cannot be rejected without a reason", documentID),
		ErrMissingRejectionReason,
	)
}

func WrapInvalidTransition(documentID, from, to string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidTransition,
		fmt.Sprintf("Document %s cannot move from %q to %q", documentID, from, to),
		ErrInvalidTransition,
	)
}

func WrapDocumentNotFound(documentID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Document with ID %s not found", documentID),
		ErrDocumentNotFound,
	)
}

func WrapContractNotFound(contractID string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("Contract with ID %s not found", contractID),
		ErrContractNotFound,
	)
}

func WrapNotificationDeliveryFailed(recipientID string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeNotificationDeliveryFailed,
		fmt.Sprintf("Notification to %s could not be delivered", recipientID),
		errors.Join(ErrNotificationDeliveryFailed, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// CodeOf returns the business code carried by err, or an empty string.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
