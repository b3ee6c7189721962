package domain

import "fmt"

// DomainError represents a business rule violation
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidCard         = "INVALID_CARD"
	ErrCodeInvalidHolderName   = "INVALID_HOLDER_NAME"
	ErrCodeInvalidCVV          = "INVALID_CVV"
	ErrCodeInvalidExpiration   = "INVALID_EXPIRATION"
	ErrCodeCardExpired         = "CARD_EXPIRED"
	ErrCodeInvalidInstallments = "INVALID_INSTALLMENTS"
	ErrCodeInvalidAmount       = "INVALID_AMOUNT"
	ErrCodeInvalidStatus       = "INVALID_STATUS"
	ErrCodeInvalidCurrency     = "INVALID_CURRENCY"
	ErrCodeInvalidTransition   = "INVALID_TRANSITION"
	ErrCodeRefundNotAllowed    = "REFUND_NOT_ALLOWED"
	ErrCodeMissingField        = "MISSING_FIELD"
)

func NewInvalidTransitionError(from, to PaymentStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewMissingFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}
