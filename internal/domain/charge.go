// Package domain encodes the charge aggregate and its value objects.
package domain

import (
	"fmt"
	"slices"
	"time"
)

// PaymentSource records where the money came from. Card is only populated
// before the first provider attempt and is never persisted.
type PaymentSource struct {
	SourceType string
	ID         *string
	Card       *Card
}

// Charge represents one merchant payment attempt and its lifecycle.
type Charge struct {
	ID         string
	MerchantID string
	OrderID    string

	AmountCents   int64
	Currency      Currency
	Description   string
	PaymentMethod Credit

	Status        PaymentStatus
	CurrentAmount int64
	ProviderID    *string
	ProviderName  *string
	PaymentSource PaymentSource

	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCharge(
	id string,
	merchantID string,
	orderID string,
	amountCents int64,
	currency Currency,
	description string,
	paymentMethod Credit,
	card *Card,
) (*Charge, error) {
	if id == "" {
		return nil, NewMissingFieldError("charge ID")
	}
	if merchantID == "" {
		return nil, NewMissingFieldError("merchant ID")
	}
	if orderID == "" {
		return nil, NewMissingFieldError("order ID")
	}
	if amountCents <= 0 {
		return nil, &DomainError{Code: ErrCodeInvalidAmount, Message: "amount must be greater than 0"}
	}
	if _, err := ParseCurrency(string(currency)); err != nil {
		return nil, err
	}

	return &Charge{
		ID:            id,
		MerchantID:    merchantID,
		OrderID:       orderID,
		AmountCents:   amountCents,
		Currency:      currency,
		Description:   description,
		PaymentMethod: paymentMethod,
		Status:        StatusPending,
		CurrentAmount: amountCents,
		PaymentSource: PaymentSource{SourceType: "card", Card: card},
		CreatedAt:     time.Now(),
	}, nil
}

// IsReadyToProcess reports whether the charge may be handed to a provider.
// A charge already bound to a provider must never be re-attempted.
func (c *Charge) IsReadyToProcess() bool {
	return (c.Status == StatusPending || c.Status == StatusFailed) && c.ProviderID == nil
}

// AllowRefund reports whether the charge can be refunded.
func (c *Charge) AllowRefund() bool {
	return c.Status == StatusPaid && c.CurrentAmount > 0 && c.ProviderID != nil
}

// SetProvider binds the charge to the provider that accepted it.
func (c *Charge) SetProvider(providerID, providerName string) {
	c.ProviderID = &providerID
	c.ProviderName = &providerName
}

// SetPaymentSource records the provider-assigned source id and the outcome
// status of the provider attempt.
func (c *Charge) SetPaymentSource(sourceID string, status PaymentStatus) error {
	if err := c.transition(status); err != nil {
		return err
	}
	c.PaymentSource.ID = &sourceID
	return nil
}

func (c *Charge) Fail() error {
	return c.transition(StatusFailed)
}

// Refund decrements the remaining amount and marks the charge refunded.
// Callers must check AllowRefund first or handle the returned error.
func (c *Charge) Refund(amount int64) error {
	if !c.AllowRefund() {
		return &DomainError{Code: ErrCodeRefundNotAllowed, Message: fmt.Sprintf("charge %s cannot be refunded", c.ID)}
	}
	if amount <= 0 {
		return &DomainError{Code: ErrCodeInvalidAmount, Message: "refund amount must be greater than 0"}
	}
	if amount > c.CurrentAmount {
		return &DomainError{Code: ErrCodeInvalidAmount, Message: "refund amount exceeds remaining charge amount"}
	}
	c.CurrentAmount -= amount
	c.Status = StatusRefunded
	return nil
}

// CancelRefund reverses a prior Refund call with the same amount after the
// remote refund reported failure. No bounds are re-checked: the caller
// guarantees it reverses its own prior Refund.
func (c *Charge) CancelRefund(amount int64) {
	c.CurrentAmount += amount
	c.Status = StatusPaid
}

func (c *Charge) transition(target PaymentStatus) error {
	if err := c.canTransitionTo(target); err != nil {
		return err
	}
	c.Status = target
	return nil
}

func (c *Charge) canTransitionTo(target PaymentStatus) error {
	switch c.Status {
	case StatusPending:
		return c.allow(target, StatusPaid, StatusFailed, StatusVoided)
	case StatusFailed:
		// A failed charge without a bound provider may be re-attempted
		// through the idempotent create path.
		return c.allow(target, StatusPaid, StatusFailed, StatusVoided)
	case StatusPaid:
		return c.allow(target, StatusRefunded)
	case StatusRefunded:
		return c.allow(target, StatusPaid)
	}
	return NewInvalidTransitionError(c.Status, target)
}

func (c *Charge) allow(target PaymentStatus, allowed ...PaymentStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(c.Status, target)
}

// Reconstitute - special constructor for loading from the database.
func Reconstitute(
	id, merchantID, orderID string,
	amountCents int64, currency Currency, description string,
	status PaymentStatus, paymentMethod Credit,
	currentAmount int64,
	providerID, providerName *string,
	paymentSourceType string, paymentSourceID *string,
	createdAt time.Time, updatedAt *time.Time,
) *Charge {
	return &Charge{
		ID:            id,
		MerchantID:    merchantID,
		OrderID:       orderID,
		AmountCents:   amountCents,
		Currency:      currency,
		Description:   description,
		Status:        status,
		PaymentMethod: paymentMethod,
		CurrentAmount: currentAmount,
		ProviderID:    providerID,
		ProviderName:  providerName,
		PaymentSource: PaymentSource{SourceType: paymentSourceType, ID: paymentSourceID},
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
