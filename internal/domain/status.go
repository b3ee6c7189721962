package domain

import "fmt"

// PaymentStatus represents the current state of a charge in its lifecycle
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "pending"
	StatusAuthorized PaymentStatus = "authorized"
	StatusPaid       PaymentStatus = "paid"
	StatusFailed     PaymentStatus = "failed"
	StatusRefunded   PaymentStatus = "refunded"
	StatusVoided     PaymentStatus = "voided"
)

func ParseStatus(value string) (PaymentStatus, error) {
	switch PaymentStatus(value) {
	case StatusPending, StatusAuthorized, StatusPaid, StatusFailed, StatusRefunded, StatusVoided:
		return PaymentStatus(value), nil
	}
	return "", &DomainError{
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("invalid value for status: received %q", value),
	}
}

// Currency is the settlement currency of a charge. Single-valued for now.
type Currency string

const CurrencyBRL Currency = "BRL"

func ParseCurrency(value string) (Currency, error) {
	if Currency(value) == CurrencyBRL {
		return CurrencyBRL, nil
	}
	return "", &DomainError{
		Code:    ErrCodeInvalidCurrency,
		Message: fmt.Sprintf("invalid value for currency: received %q, expected %q", value, CurrencyBRL),
	}
}

// PaymentType identifies the payment method family.
type PaymentType string

const PaymentTypeCredit PaymentType = "credit"
